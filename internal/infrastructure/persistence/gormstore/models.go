package gormstore

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// =========================================
// GORM模型（与领域实体分离）
// 主键为UUID字符串，创建前由BeforeCreate生成
// =========================================

type UserModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:191;not null;comment:邮箱"`
	PasswordHash string    `gorm:"size:255;comment:密码（bcrypt）"`
	Name         string    `gorm:"size:100;not null;comment:姓名"`
	Role         string    `gorm:"size:10;not null;default:USER;comment:角色"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type CategoryModel struct {
	ID          string         `gorm:"primaryKey;size:36"`
	Name        string         `gorm:"size:100;not null"`
	Slug        string         `gorm:"uniqueIndex;size:191;not null"`
	Description string         `gorm:"type:text"`
	Image       string         `gorm:"size:500"`
	ParentID    *string        `gorm:"index;size:36"`
	Parent      *CategoryModel `gorm:"foreignKey:ParentID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string { return "categories" }

func (m *CategoryModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type ProductModel struct {
	ID               string              `gorm:"primaryKey;size:36"`
	Name             string              `gorm:"size:200;not null;comment:商品名称"`
	Slug             string              `gorm:"uniqueIndex;size:191;not null"`
	Description      string              `gorm:"type:text"`
	ShortDescription string              `gorm:"size:500"`
	Price            decimal.Decimal     `gorm:"type:decimal(10,2);not null;index:idx_list"`
	CompareAtPrice   decimal.NullDecimal `gorm:"type:decimal(10,2);comment:划线价"`
	Images           []string            `gorm:"serializer:json;type:text;comment:图片列表(JSON)"`
	InStock          bool                `gorm:"not null"`
	Featured         bool                `gorm:"index;not null;default:false"`
	SKU              string              `gorm:"size:64"`
	CategoryID       string              `gorm:"index;size:36;not null"`
	Category         *CategoryModel      `gorm:"foreignKey:CategoryID"`
	CreatedAt        time.Time           `gorm:"index:idx_list"`
	UpdatedAt        time.Time
}

func (ProductModel) TableName() string { return "products" }

func (m *ProductModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type OrderModel struct {
	ID              string           `gorm:"primaryKey;size:36"`
	CustomerName    string           `gorm:"size:100;not null"`
	CustomerEmail   string           `gorm:"size:191;not null;index"`
	CustomerPhone   string           `gorm:"size:32;not null"`
	DeliveryMethod  string           `gorm:"size:16;not null;comment:office|address"`
	Courier         string           `gorm:"size:16;not null;comment:speedy|econt"`
	DeliveryOffice  string           `gorm:"size:200"`
	DeliveryAddress string           `gorm:"size:300"`
	DeliveryCity    string           `gorm:"size:100"`
	PostalCode      string           `gorm:"size:16"`
	Notes           string           `gorm:"type:text"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	DeliveryFee     decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	PaymentMethod   string           `gorm:"size:16;not null;default:cod"`
	Status          string           `gorm:"size:16;not null;index;default:PENDING"`
	TrackingNumber  string           `gorm:"size:64"`
	UserID          *string          `gorm:"index;size:36"`
	User            *UserModel       `gorm:"foreignKey:UserID"`
	Version         int              `gorm:"not null;default:0;comment:乐观锁"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index"`
	UpdatedAt       time.Time
}

func (OrderModel) TableName() string { return "orders" }

func (m *OrderModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type OrderItemModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	OrderID     string          `gorm:"index;size:36;not null"`
	ProductID   string          `gorm:"index;size:36;not null"`
	Product     *ProductModel   `gorm:"foreignKey:ProductID"`
	ProductName string          `gorm:"size:200;comment:下单时商品名称"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:下单时单价"`
}

func (OrderItemModel) TableName() string { return "order_items" }

func (m *OrderItemModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type ReviewModel struct {
	ID        string        `gorm:"primaryKey;size:36"`
	Name      string        `gorm:"size:100;not null"`
	Email     string        `gorm:"size:191;not null"`
	Rating    int           `gorm:"not null"`
	Comment   string        `gorm:"type:text;not null"`
	Approved  bool          `gorm:"index;not null;default:false"`
	ProductID *string       `gorm:"index;size:36"`
	Product   *ProductModel `gorm:"foreignKey:ProductID"`
	UserID    *string       `gorm:"index;size:36"`
	CreatedAt time.Time     `gorm:"index"`
	UpdatedAt time.Time
}

func (ReviewModel) TableName() string { return "reviews" }

func (m *ReviewModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type NotificationModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Type      string    `gorm:"size:32;not null"`
	Title     string    `gorm:"size:200;not null"`
	Message   string    `gorm:"type:text"`
	Link      string    `gorm:"size:300"`
	Read      bool      `gorm:"index;not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (m *NotificationModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type ContactMessageModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:191;not null"`
	Phone     string    `gorm:"size:32"`
	Subject   string    `gorm:"size:200"`
	Message   string    `gorm:"type:text;not null"`
	Read      bool      `gorm:"index;not null;default:false"`
	CreatedAt time.Time `gorm:"index"`
}

func (ContactMessageModel) TableName() string { return "contact_messages" }

func (m *ContactMessageModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type PageModel struct {
	ID              string `gorm:"primaryKey;size:36"`
	Slug            string `gorm:"uniqueIndex;size:191;not null"`
	Title           string `gorm:"size:200;not null"`
	Content         string `gorm:"type:text"`
	MetaDescription string `gorm:"size:300"`
	Published       bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PageModel) TableName() string { return "pages" }

func (m *PageModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type PostModel struct {
	ID          string     `gorm:"primaryKey;size:36"`
	Slug        string     `gorm:"uniqueIndex;size:191;not null"`
	Title       string     `gorm:"size:200;not null"`
	Excerpt     string     `gorm:"size:500"`
	Content     string     `gorm:"type:text"`
	CoverImage  string     `gorm:"size:500"`
	Published   bool       `gorm:"index;not null;default:false"`
	PublishedAt *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PostModel) TableName() string { return "posts" }

func (m *PostModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type BannerModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Title     string `gorm:"size:200;not null"`
	Subtitle  string `gorm:"size:300"`
	Image     string `gorm:"size:500;not null"`
	Link      string `gorm:"size:300"`
	Position  int    `gorm:"index;not null;default:0"`
	Active    bool   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BannerModel) TableName() string { return "banners" }

func (m *BannerModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }

type GalleryItemModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Image     string `gorm:"size:500;not null"`
	Caption   string `gorm:"size:300"`
	Position  int    `gorm:"index;not null;default:0"`
	Active    bool   `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (GalleryItemModel) TableName() string { return "gallery_items" }

func (m *GalleryItemModel) BeforeCreate(*gorm.DB) error { return assignID(&m.ID) }
