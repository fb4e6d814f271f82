package utils

import "github.com/google/uuid"

// NewID 生成用户主键（uuid v4）
func NewID() string { return uuid.NewString() }
