package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedesk/internal/apperr"
	"feedesk/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), Config(nil))
	require.NoError(t, err)
	return db, mock
}

var auditColumns = []string{
	"id", "user_id", "role", "module", "record_id", "action",
	"old_values", "new_values", "ip_address", "user_agent", "created_at",
}

func TestAuditRepo_Append(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	mock.ExpectExec(`INSERT INTO "audit_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &models.AuditLog{Module: "Payment", RecordID: "p-1", Action: models.ActionUpdate}
	require.NoError(t, repo.Append(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(auditColumns).
			AddRow("a-2", "u-1", "Admin", "Payment", "p-1", "UPDATE",
				[]byte(`{"amount":{"kind":"number","value":100}}`),
				[]byte(`{"amount":{"kind":"number","value":150}}`),
				"10.0.0.1", "curl/8", now).
			AddRow("a-1", nil, nil, "Student", "s-1", "CREATE",
				[]byte(`null`), []byte(`{"name":{"kind":"string","value":"Asha"}}`),
				"Unknown", "Unknown", now.Add(-time.Hour)))
	mock.ExpectQuery(`SELECT "id","name","email" FROM "users" WHERE "users"."id" = \$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow("u-1", "Ravi", "ravi@example.com"))

	entries, err := repo.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "a-2", first.ID)
	require.NotNil(t, first.User)
	assert.Equal(t, "Ravi", first.User.Name)
	assert.Equal(t, models.RoleAdmin, *first.Role)
	assert.Equal(t, "150", first.New()["amount"].String())

	second := entries[1]
	assert.Nil(t, second.UserID)
	assert.Nil(t, second.User)
	assert.Empty(t, second.Old())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_ListPaged(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows(auditColumns))

	entries, err := repo.List(context.Background(), ListOptions{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(auditColumns).
			AddRow("a-1", nil, nil, "User", "u-9", "DELETE",
				[]byte(`{"email":{"kind":"string","value":"x@y.z"}}`), []byte(`null`),
				"Unknown", "Unknown", time.Now()))
	mock.ExpectExec(`DELETE FROM "audit_logs" WHERE "audit_logs"."id" = \$1`).
		WithArgs("a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, "a-1", deleted.ID)
	assert.Equal(t, "x@y.z", deleted.Old()["email"].String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(auditColumns))

	_, err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_DeleteMalformedID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE id = \$1`).
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})

	_, err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)
	ae := apperr.From(err, "Audit log not found")
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
	assert.Equal(t, 404, ae.Status())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_UpdateDeletedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepo(db)

	mock.ExpectExec(`UPDATE "payments" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	p := &models.Payment{ID: "p-gone", StudentID: "s-1", FeeType: "tuition", PaymentMethod: "cash", Amount: 150}
	err := repo.Update(context.Background(), p)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_GetWithStudent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "fee_type", "payment_method", "amount", "invoice_number", "status"}).
			AddRow("p-1", "s-1", "tuition", "cash", 100.0, "INV-1", "PENDING"))
	mock.ExpectQuery(`SELECT \* FROM "students" WHERE "students"."id" = \$1`).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "course"}).
			AddRow("s-1", "Asha", "asha@example.com", "BCA"))

	p, err := repo.Get(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Amount)
	require.NotNil(t, p.Student)
	assert.Equal(t, "Asha", p.Student.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepo_CreateUpdateDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepo(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "payments" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "payments" WHERE "payments"."id" = \$1`).WillReturnResult(sqlmock.NewResult(0, 1))

	p := &models.Payment{StudentID: "s-1", FeeType: "tuition", PaymentMethod: "cash", Amount: 100,
		Student: &models.Student{ID: "s-1", Name: "not written"}}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.PaymentPending, p.Status)

	p.Amount = 150
	require.NoError(t, repo.Update(ctx, p))
	require.NoError(t, repo.Delete(ctx, p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepo_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentRepo(db)

	mock.ExpectExec(`DELETE FROM "students"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), &models.Student{ID: "gone"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE LOWER\(email\) = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role", "password_hash", "failed_attempts", "is_locked"}).
			AddRow("u-1", "admin@feedesk.local", "Admin", "hash", 2, false))

	u, err := repo.GetByEmail(context.Background(), "  Admin@Feedesk.local ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, 2, u.FailedAttempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_SaveLoginState(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(`UPDATE "users" SET "failed_attempts"=\$1,"is_locked"=\$2 WHERE`).
		WithArgs(5, true, "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{ID: "u-1", FailedAttempts: 5, IsLocked: true}
	require.NoError(t, repo.SaveLoginState(context.Background(), u))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRepo_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoginRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "employee_login_details" ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ip_address", "user_agent", "created_at"}).
			AddRow("l-1", "u-1", "10.0.0.1", "Mozilla", time.Now()))
	mock.ExpectQuery(`SELECT "id","name","email","employee_id","login_type" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "employee_id", "login_type"}).
			AddRow("u-1", "Ravi", "ravi@example.com", "EMP-7", "office"))

	rows, err := repo.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].User)
	assert.Equal(t, "EMP-7", rows[0].User.EmployeeID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedAdmin(t *testing.T) {
	t.Run("creates the first admin", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE role = \$1`).
			WithArgs("Admin").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := SeedAdmin(context.Background(), db, "admin@feedesk.local", "Admin123!")
		require.NoError(t, err)
		assert.True(t, created)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips when an admin exists", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		created, err := SeedAdmin(context.Background(), db, "admin@feedesk.local", "Admin123!")
		require.NoError(t, err)
		assert.False(t, created)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
