package repositories

import "context"

// TxManager ครอบ operation ที่เขียนหลาย table/หลายแถวไว้ใน transaction เดียว
// fn ได้ context ที่ผูกกับ transaction; repositories ฝั่ง infrastructure
// ดึง handle จาก context เอง error จาก fn ทำให้ rollback ทั้งก้อน
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
