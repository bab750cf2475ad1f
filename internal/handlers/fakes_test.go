package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"feedesk/internal/database"
	"feedesk/internal/models"

	"gorm.io/gorm"
)

// in-memory stores standing in for the gorm repositories

type memPayments struct {
	mu       sync.Mutex
	rows     map[string]models.Payment
	students *memStudents
}

func newMemPayments(students *memStudents) *memPayments {
	return &memPayments{rows: map[string]models.Payment{}, students: students}
}

func (m *memPayments) List(_ context.Context, _ database.ListOptions) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Payment, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPayments) Get(ctx context.Context, id string) (*models.Payment, error) {
	m.mu.Lock()
	p, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if m.students != nil {
		if s, err := m.students.Get(ctx, p.StudentID); err == nil {
			p.Student = s
		}
	}
	return &p, nil
}

func (m *memPayments) Create(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = p.BeforeCreate(nil)
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	row := *p
	row.Student = nil
	m.rows[p.ID] = row
	return nil
}

func (m *memPayments) Update(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.UpdatedAt = time.Now()
	row := *p
	row.Student = nil
	m.rows[p.ID] = row
	return nil
}

func (m *memPayments) Delete(_ context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, p.ID)
	return nil
}

type memStudents struct {
	mu   sync.Mutex
	rows map[string]models.Student
}

func newMemStudents(seed ...models.Student) *memStudents {
	m := &memStudents{rows: map[string]models.Student{}}
	for _, s := range seed {
		m.rows[s.ID] = s
	}
	return m
}

func (m *memStudents) List(_ context.Context, _ database.ListOptions) ([]models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Student, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStudents) Get(_ context.Context, id string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (m *memStudents) Create(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = s.BeforeCreate(nil)
	m.rows[s.ID] = *s
	return nil
}

func (m *memStudents) Update(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[s.ID] = *s
	return nil
}

func (m *memStudents) Delete(_ context.Context, s *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, s.ID)
	return nil
}

type memUsers struct {
	mu   sync.Mutex
	rows map[string]models.User
}

func newMemUsers(seed ...models.User) *memUsers {
	m := &memUsers{rows: map[string]models.User{}}
	for _, u := range seed {
		m.rows[u.ID] = u
	}
	return m
}

func (m *memUsers) List(_ context.Context, _ database.ListOptions) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.rows))
	for _, u := range m.rows {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUsers) Get(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	_ = u.BeforeCreate(nil)
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) Update(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, u.ID)
	return nil
}

func (m *memUsers) SaveLoginState(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[u.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.FailedAttempts, row.IsLocked = u.FailedAttempts, u.IsLocked
	m.rows[u.ID] = row
	return nil
}

type memLogins struct {
	mu   sync.Mutex
	rows []models.EmployeeLoginDetail
}

func (m *memLogins) Create(_ context.Context, d *models.EmployeeLoginDetail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_ = d.BeforeCreate(nil)
	d.CreatedAt = time.Now()
	m.rows = append(m.rows, *d)
	return nil
}

func (m *memLogins) List(_ context.Context, _ database.ListOptions) ([]models.EmployeeLoginDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.EmployeeLoginDetail(nil), m.rows...), nil
}

// memAudit is both the recorder's Appender and the handlers' AuditStore.
type memAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
	fail    bool
}

var errAuditDown = errors.New("audit store unavailable")

func (m *memAudit) Append(_ context.Context, e *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errAuditDown
	}
	_ = e.BeforeCreate(nil)
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memAudit) List(_ context.Context, opts database.ListOptions) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AuditLog, len(m.entries))
	for i, e := range m.entries {
		out[len(m.entries)-1-i] = e
	}
	return page(out, opts), nil
}

func (m *memAudit) Get(_ context.Context, id string) (*models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAudit) Delete(_ context.Context, id string) (*models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAudit) all() []models.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLog(nil), m.entries...)
}
