package gormstore

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// isDuplicateError 唯一索引冲突
// TranslateError开启时驱动返回gorm.ErrDuplicatedKey，字符串匹配兜底
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "a foreign key constraint fails") ||
		strings.Contains(msg, "violates foreign key constraint")
}

func assignID(id *string) error {
	if *id == "" {
		*id = uuid.NewString()
	}
	return nil
}

// likeEscape LIKE转义字符，它在mysql/postgres/sqlite的字符串字面量中都无特殊含义
const likeEscape = "!"

// likePattern 转义通配符并转小写，配合LOWER(col) LIKE ? ESCAPE '!'使用
func likePattern(keyword string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(keyword))) + "%"
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
