package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskdeck/domain/repositories"
)

type txKey struct{}

// dbFrom คืน transaction handle จาก context ถ้ามี ไม่งั้นใช้ base connection
// ทำให้ repository เดียวกันใช้ได้ทั้งใน/นอก transaction
func dbFrom(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return base.WithContext(ctx)
}

type TxManagerImpl struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) repositories.TxManager {
	return &TxManagerImpl{db: db}
}

// WithinTx รัน fn ใน transaction เดียว commit เมื่อ fn คืน nil
// ถ้า transaction ซ้อนกัน (มี tx ใน context อยู่แล้ว) ใช้ tx เดิมต่อ
func (m *TxManagerImpl) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
