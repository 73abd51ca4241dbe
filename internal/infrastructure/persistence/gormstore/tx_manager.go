package gormstore

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager 事务管理器
// 事务DB放入Context，仓储通过conn取出，使多个仓储操作共享同一事务
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 在事务中执行fn，fn返回错误时回滚
// 已在事务中时复用外层事务（嵌套时使用SavePoint）
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return conn(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn 从context获取事务DB，没有则使用默认DB
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
