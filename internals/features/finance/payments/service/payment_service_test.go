// file: internals/features/finance/payments/service/payment_service_test.go
package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	studentModel "asramaku_backend/internals/features/dormitory/students/model"
	"asramaku_backend/internals/features/finance/payments/dto"
	"asramaku_backend/internals/features/finance/payments/model"
)

// DDL manual karena tag gorm membawa default Postgres (gen_random_uuid, jsonb)
// yang tidak dimengerti SQLite; id selalu di-set dari aplikasi.
var paymentTestDDL = []string{
	`CREATE TABLE students (
		student_id TEXT PRIMARY KEY,
		student_asrama_id TEXT NOT NULL,
		student_national_id TEXT NOT NULL UNIQUE,
		student_code TEXT,
		student_full_name TEXT NOT NULL,
		student_building_number TEXT,
		student_room_number TEXT,
		student_government TEXT,
		student_district TEXT,
		student_faculty TEXT,
		student_phone TEXT,
		student_is_exempt_from_fees INTEGER NOT NULL DEFAULT 0,
		student_has_outstanding_payment INTEGER NOT NULL DEFAULT 0,
		student_outstanding_amount NUMERIC NOT NULL DEFAULT 0,
		student_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		student_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		student_deleted_at DATETIME
	)`,
	`CREATE TABLE payment_transactions (
		payment_transaction_id TEXT PRIMARY KEY,
		payment_transaction_asrama_id TEXT NOT NULL,
		payment_transaction_student_id TEXT NOT NULL,
		payment_transaction_amount NUMERIC NOT NULL,
		payment_transaction_method TEXT NOT NULL DEFAULT 'cash',
		payment_transaction_status TEXT NOT NULL DEFAULT 'paid',
		payment_transaction_external_id TEXT,
		payment_transaction_checkout_url TEXT,
		payment_transaction_note TEXT,
		payment_transaction_meta TEXT,
		payment_transaction_recorded_by TEXT,
		payment_transaction_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		payment_transaction_deleted_at DATETIME
	)`,
	`CREATE TABLE payment_exemptions (
		exemption_id TEXT PRIMARY KEY,
		exemption_asrama_id TEXT NOT NULL,
		exemption_student_id TEXT NOT NULL,
		exemption_start_date DATETIME NOT NULL,
		exemption_end_date DATETIME NOT NULL,
		exemption_is_active INTEGER NOT NULL DEFAULT 1,
		exemption_reason TEXT,
		exemption_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		exemption_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		exemption_deleted_at DATETIME
	)`,
}

func newPaymentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	for _, ddl := range paymentTestDDL {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedDebtor(t *testing.T, db *gorm.DB, asramaID uuid.UUID, nik, outstanding string) *studentModel.StudentModel {
	t.Helper()
	st := &studentModel.StudentModel{
		StudentID:         uuid.New(),
		StudentAsramaID:   asramaID,
		StudentNationalID: nik,
		StudentFullName:   "Penghuni " + nik,
	}
	st.SetOutstanding(decimal.RequireFromString(outstanding))
	require.NoError(t, db.Create(st).Error)
	return st
}

func reloadStudent(t *testing.T, db *gorm.DB, id uuid.UUID) *studentModel.StudentModel {
	t.Helper()
	var st studentModel.StudentModel
	require.NoError(t, db.Where("student_id = ?", id).Take(&st).Error)
	return &st
}

func exDate(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func TestCreatePayment_CashDecrementsOutstanding(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040001", "500.00")

	resp, err := svc.CreatePayment(asramaID, &dto.CreatePaymentRequest{
		StudentID: st.StudentID,
		Amount:    decimal.RequireFromString("200.00"),
		Method:    "cash",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, resp.Status)
	assert.True(t, resp.RemainingOutstanding.Equal(decimal.RequireFromString("300")))

	after := reloadStudent(t, db, st.StudentID)
	assert.True(t, after.StudentOutstandingAmount.Equal(decimal.RequireFromString("300")))
	assert.True(t, after.StudentHasOutstandingPayment)

	// pelunasan → flag tunggakan ikut turun
	resp, err = svc.CreatePayment(asramaID, &dto.CreatePaymentRequest{
		StudentID: st.StudentID,
		Amount:    decimal.RequireFromString("300.00"),
		Method:    "bank_transfer",
	}, nil)
	require.NoError(t, err)
	assert.True(t, resp.RemainingOutstanding.Equal(decimal.Zero))

	after = reloadStudent(t, db, st.StudentID)
	assert.False(t, after.StudentHasOutstandingPayment)
}

func TestCreatePayment_OverpaymentClampsToZero(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040002", "100.00")

	resp, err := svc.CreatePayment(asramaID, &dto.CreatePaymentRequest{
		StudentID: st.StudentID,
		Amount:    decimal.RequireFromString("150.00"),
		Method:    "cash",
	}, nil)
	require.NoError(t, err)
	assert.True(t, resp.RemainingOutstanding.Equal(decimal.Zero), "tunggakan tidak boleh negatif")

	after := reloadStudent(t, db, st.StudentID)
	assert.False(t, after.StudentHasOutstandingPayment)
}

func TestCreatePayment_InvalidAmount(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)

	_, err := svc.CreatePayment(uuid.New(), &dto.CreatePaymentRequest{
		StudentID: uuid.New(),
		Amount:    decimal.Zero,
		Method:    "cash",
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreatePayment_WrongAsrama(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	st := seedDebtor(t, db, uuid.New(), "3173040003", "100.00")

	_, err := svc.CreatePayment(uuid.New(), &dto.CreatePaymentRequest{
		StudentID: st.StudentID,
		Amount:    decimal.RequireFromString("50.00"),
		Method:    "cash",
	}, nil)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestDeletePayment_ReversesPaidDeduction(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040004", "500.00")

	resp, err := svc.CreatePayment(asramaID, &dto.CreatePaymentRequest{
		StudentID: st.StudentID,
		Amount:    decimal.RequireFromString("200.00"),
		Method:    "cash",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePayment(asramaID, resp.PaymentTransactionID))

	after := reloadStudent(t, db, st.StudentID)
	assert.True(t, after.StudentOutstandingAmount.Equal(decimal.RequireFromString("500")),
		"potongan dikembalikan, dapat %s", after.StudentOutstandingAmount)
	assert.True(t, after.StudentHasOutstandingPayment)

	// sudah dihapus → tidak bisa dihapus dua kali
	assert.ErrorIs(t, svc.DeletePayment(asramaID, resp.PaymentTransactionID), ErrPaymentNotFound)
}

func seedPendingGatewayPayment(t *testing.T, db *gorm.DB, asramaID, studentID uuid.UUID, amount string) *model.PaymentTransactionModel {
	t.Helper()
	id := uuid.New()
	externalID := id.String()
	p := &model.PaymentTransactionModel{
		PaymentTransactionID:         id,
		PaymentTransactionAsramaID:   asramaID,
		PaymentTransactionStudentID:  studentID,
		PaymentTransactionAmount:     decimal.RequireFromString(amount),
		PaymentTransactionMethod:     model.PaymentMethodGateway,
		PaymentTransactionStatus:     model.PaymentStatusPending,
		PaymentTransactionExternalID: &externalID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestHandleGatewayNotification_Settlement(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040005", "400.00")
	p := seedPendingGatewayPayment(t, db, asramaID, st.StudentID, "250.00")

	require.NoError(t, svc.HandleGatewayNotification(*p.PaymentTransactionExternalID, "settlement"))

	var after model.PaymentTransactionModel
	require.NoError(t, db.Where("payment_transaction_id = ?", p.PaymentTransactionID).Take(&after).Error)
	assert.Equal(t, model.PaymentStatusPaid, after.PaymentTransactionStatus)

	student := reloadStudent(t, db, st.StudentID)
	assert.True(t, student.StudentOutstandingAmount.Equal(decimal.RequireFromString("150")))

	// webhook bisa datang berulang → panggilan kedua tidak memotong lagi
	require.NoError(t, svc.HandleGatewayNotification(*p.PaymentTransactionExternalID, "settlement"))
	student = reloadStudent(t, db, st.StudentID)
	assert.True(t, student.StudentOutstandingAmount.Equal(decimal.RequireFromString("150")))
}

func TestHandleGatewayNotification_Expire(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040006", "400.00")
	p := seedPendingGatewayPayment(t, db, asramaID, st.StudentID, "250.00")

	require.NoError(t, svc.HandleGatewayNotification(*p.PaymentTransactionExternalID, "expire"))

	var after model.PaymentTransactionModel
	require.NoError(t, db.Where("payment_transaction_id = ?", p.PaymentTransactionID).Take(&after).Error)
	assert.Equal(t, model.PaymentStatusCanceled, after.PaymentTransactionStatus)

	// tunggakan tidak tersentuh
	student := reloadStudent(t, db, st.StudentID)
	assert.True(t, student.StudentOutstandingAmount.Equal(decimal.RequireFromString("400")))
}

func TestHandleGatewayNotification_UnknownOrder(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	assert.ErrorIs(t, svc.HandleGatewayNotification("tidak-ada", "settlement"), ErrGatewayOrderExists)
}

func TestCreateExemption_RejectsOverlap(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040007", "95.00")

	_, err := svc.CreateExemption(asramaID, st.StudentID, exDate(1), exDate(10), nil)
	require.NoError(t, err)

	// menyentuh sebagian interval aktif → ditolak
	_, err = svc.CreateExemption(asramaID, st.StudentID, exDate(5), exDate(15), nil)
	assert.ErrorIs(t, err, ErrExemptionOverlap)

	// hari terakhir == hari pertama interval lain → tetap overlap (inklusif)
	_, err = svc.CreateExemption(asramaID, st.StudentID, exDate(10), exDate(20), nil)
	assert.ErrorIs(t, err, ErrExemptionOverlap)

	// bersebelahan tanpa menyentuh → boleh
	_, err = svc.CreateExemption(asramaID, st.StudentID, exDate(11), exDate(20), nil)
	assert.NoError(t, err)
}

func TestCreateExemption_Validation(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()

	_, err := svc.CreateExemption(asramaID, uuid.New(), exDate(10), exDate(1), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.CreateExemption(asramaID, uuid.New(), exDate(1), exDate(10), nil)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestUpdateExemption(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040008", "95.00")

	first, err := svc.CreateExemption(asramaID, st.StudentID, exDate(1), exDate(10), nil)
	require.NoError(t, err)
	second, err := svc.CreateExemption(asramaID, st.StudentID, exDate(15), exDate(20), nil)
	require.NoError(t, err)

	// menggeser interval sendiri tidak dianggap tabrakan dengan dirinya
	endDate := "2026-03-12"
	updated, err := svc.UpdateExemption(asramaID, first.ExemptionID, &dto.UpdateExemptionRequest{EndDate: &endDate})
	require.NoError(t, err)
	assert.True(t, updated.ExemptionEndDate.Equal(exDate(12)))

	// tapi tabrakan dengan interval lain tetap ditolak
	endDate = "2026-03-16"
	_, err = svc.UpdateExemption(asramaID, first.ExemptionID, &dto.UpdateExemptionRequest{EndDate: &endDate})
	assert.ErrorIs(t, err, ErrExemptionOverlap)

	// menonaktifkan melepas klaim interval
	inactive := false
	_, err = svc.UpdateExemption(asramaID, second.ExemptionID, &dto.UpdateExemptionRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.UpdateExemption(asramaID, first.ExemptionID, &dto.UpdateExemptionRequest{EndDate: &endDate})
	assert.NoError(t, err)

	_, err = svc.UpdateExemption(asramaID, uuid.New(), &dto.UpdateExemptionRequest{})
	assert.ErrorIs(t, err, ErrExemptionNotFound)
}

func TestDeleteExemption(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()
	st := seedDebtor(t, db, asramaID, "3173040009", "95.00")

	ex, err := svc.CreateExemption(asramaID, st.StudentID, exDate(1), exDate(10), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExemption(asramaID, ex.ExemptionID))
	assert.ErrorIs(t, svc.DeleteExemption(asramaID, ex.ExemptionID), ErrExemptionNotFound)

	// interval yang sudah dihapus tidak lagi memblokir interval baru
	_, err = svc.CreateExemption(asramaID, st.StudentID, exDate(1), exDate(10), nil)
	assert.NoError(t, err)
}

func TestTotalOutstanding(t *testing.T) {
	db := newPaymentTestDB(t)
	svc := NewPaymentService(db)
	asramaID := uuid.New()

	seedDebtor(t, db, asramaID, "3173040010", "100.00")
	seedDebtor(t, db, asramaID, "3173040011", "50.00")
	seedDebtor(t, db, uuid.New(), "3173040012", "999.00") // asrama lain

	total, err := svc.TotalOutstanding(asramaID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("150")), "dapat %s", total)

	empty, err := svc.TotalOutstanding(uuid.New())
	require.NoError(t, err)
	assert.True(t, empty.Equal(decimal.Zero))
}
