package dao

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"wht-transfer-api/internal/dal"
	"wht-transfer-api/internal/model"
)

type TransferBillDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.DB
func NewTransferBillDao() *TransferBillDao {
	if dal.DB == nil {
		log.Panic("[FATAL] dal.DB is nil - database not initialized")
	}
	return &TransferBillDao{DB: dal.DB}
}

// 支持传入自定义 DB（比如 txDB）
func NewTransferBillDaoWithDB(db *gorm.DB) *TransferBillDao {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &TransferBillDao{DB: db}
}

// 安全检查方法
func (r *TransferBillDao) checkDB() error {
	if r == nil {
		return errors.New("TransferBillDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

func (r *TransferBillDao) Insert(o *model.TransferBillM) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert transfer bill failed: %w", err)
	}
	return r.DB.Create(o).Error
}

func (r *TransferBillDao) GetByOutBillNo(outBillNo string) (*model.TransferBillM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by out bill no failed: %w", err)
	}

	var m model.TransferBillM
	err := r.DB.Where("out_bill_no = ?", outBillNo).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// UpdateState 更新转账单状态，终态同时写入 finish_time
func (r *TransferBillDao) UpdateState(outBillNo string, data map[string]interface{}) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update transfer bill failed: %w", err)
	}
	return r.DB.Model(&model.TransferBillM{}).Where("out_bill_no = ?", outBillNo).Updates(data).Error
}

func (r *TransferBillDao) IncrPollTimes(outBillNo string) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("incr poll times failed: %w", err)
	}
	return r.DB.Model(&model.TransferBillM{}).Where("out_bill_no = ?", outBillNo).
		UpdateColumn("poll_times", gorm.Expr("poll_times + 1")).Error
}

// ListPending 查询未到终态的转账单，用于补偿轮询
func (r *TransferBillDao) ListPending(before time.Time, limit int) ([]model.TransferBillM, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list pending failed: %w", err)
	}

	var out []model.TransferBillM
	err := r.DB.Where("state NOT IN ?", []string{"SUCCESS", "FAIL", "CANCELLED"}).
		Where("create_time < ?", before).
		Order("create_time ASC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}
