package manager_test

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"backend/identity-platform/app/database/constant/user"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/database/repository"
	paging "backend/identity-platform/app/pkg/util/paging"
	"backend/identity-platform/app/pkg/verification"

	"github.com/google/uuid"
)

// fakeUserRepository keeps users in memory keyed by id. insertErr, when set,
// is returned by InsertWithProfile before anything is written, standing in
// for a constraint rejection at commit.
type fakeUserRepository struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	insertErr error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepository) add(u *entity.User) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	copied := *u
	f.users[u.ID] = &copied
	return u
}

func (f *fakeUserRepository) Insert(_ context.Context, u *entity.User) (*entity.User, error) {
	return f.add(u), nil
}

func (f *fakeUserRepository) InsertWithProfile(_ context.Context, u *entity.User, profile *entity.UserProfile) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.add(u)
	profile.UserID = u.ID
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, u entity.User) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	u.UpdatedAt = &now
	copied := u
	f.users[u.ID] = &copied
	return &u, nil
}

func (f *fakeUserRepository) DeleteByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(f.users, id)
	return u, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepository) FindByIDWithProfile(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepository) FindByPhoneNumber(_ context.Context, phoneNumber string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.PhoneNumber != nil && *u.PhoneNumber == phoneNumber {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepository) FindActiveByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := f.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u.Status != user.Active {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	_, err := f.FindByPhoneNumber(ctx, phoneNumber)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.FindByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, userID uuid.UUID, hashed string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Password = hashed
	return nil
}

func (f *fakeUserRepository) UpdateLastLogin(_ context.Context, userID uuid.UUID, ip string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = &ip
	return nil
}

func (f *fakeUserRepository) UpdateStatus(_ context.Context, userID uuid.UUID, status user.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepository) CountTotal(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}

func (f *fakeUserRepository) CountByStatus(_ context.Context, status user.Status) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, u := range f.users {
		if u.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepository) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, u := range f.users {
		if !u.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepository) Search(_ context.Context, filter repository.UserSearchFilter, page paging.Page) ([]entity.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []entity.User
	for _, u := range f.users {
		if filter.Status != nil && u.Status != *filter.Status {
			continue
		}
		if filter.Gender != nil && u.Gender != *filter.Gender {
			continue
		}
		matched = append(matched, *u)
	}
	total := len(matched)
	if page.Offset >= len(matched) {
		return nil, total, nil
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[page.Offset:end], total, nil
}

// fakeSessionRepository keeps sessions in memory keyed by token hash.
type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepository) Insert(_ context.Context, s *entity.Session) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	copied := *s
	f.sessions[s.TokenHash] = &copied
	return s, nil
}

func (f *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepository) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[tokenHash]; ok {
		s.Revoked = true
	}
	return nil
}

func (f *fakeSessionRepository) RevokeByUserID(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.UserID == userID {
			s.Revoked = true
		}
	}
	return nil
}

func (f *fakeSessionRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) ([]entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted []entity.Session
	for hash, s := range f.sessions {
		if s.UserID == userID {
			deleted = append(deleted, *s)
			delete(f.sessions, hash)
		}
	}
	return deleted, nil
}

func (f *fakeSessionRepository) DeleteExpired(_ context.Context, before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for hash, s := range f.sessions {
		if s.ExpiresAt != nil && s.ExpiresAt.Before(before) {
			delete(f.sessions, hash)
			count++
		}
	}
	return count, nil
}

// fakeProfileRepository keeps profiles in memory keyed by user id.
type fakeProfileRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.UserProfile
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{profiles: make(map[uuid.UUID]*entity.UserProfile)}
}

func (f *fakeProfileRepository) Insert(_ context.Context, p *entity.UserProfile) (*entity.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copied := *p
	f.profiles[p.UserID] = &copied
	return p, nil
}

func (f *fakeProfileRepository) Update(_ context.Context, p entity.UserProfile) (*entity.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	p.UpdatedAt = &now
	copied := p
	f.profiles[p.UserID] = &copied
	return &p, nil
}

func (f *fakeProfileRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileRepository) UpdateEmailVerified(_ context.Context, userID uuid.UUID, verified bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return sql.ErrNoRows
	}
	p.EmailVerified = verified
	return nil
}

func (f *fakeProfileRepository) UpdatePhoneVerified(_ context.Context, userID uuid.UUID, verified bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return sql.ErrNoRows
	}
	p.PhoneVerified = verified
	return nil
}

// fakeDeliveryRepository records created jobs; state transitions are no-ops.
type fakeDeliveryRepository struct {
	mu   sync.Mutex
	jobs []*entity.DeliveryJob
}

func newFakeDeliveryRepository() *fakeDeliveryRepository {
	return &fakeDeliveryRepository{}
}

func (f *fakeDeliveryRepository) Create(_ context.Context, job *entity.DeliveryJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeDeliveryRepository) GetByID(_ context.Context, id string) (*entity.DeliveryJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, job := range f.jobs {
		if job.ID.String() == id {
			return job, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeDeliveryRepository) UpdateToProcessing(context.Context, string, time.Time) error {
	return nil
}

func (f *fakeDeliveryRepository) UpdateToSent(context.Context, string, time.Time) error {
	return nil
}

func (f *fakeDeliveryRepository) UpdateToFailed(context.Context, string, string) error {
	return nil
}

func (f *fakeDeliveryRepository) UpdateToRetrying(context.Context, string, string) error {
	return nil
}

func (f *fakeDeliveryRepository) UpdateToPending(context.Context, string) error {
	return nil
}

func (f *fakeDeliveryRepository) GetPendingJobs(context.Context, int) ([]*entity.DeliveryJob, error) {
	return nil, nil
}

func (f *fakeDeliveryRepository) GetRetryableJobs(context.Context, time.Time, int) ([]*entity.DeliveryJob, error) {
	return nil, nil
}

func (f *fakeDeliveryRepository) DeleteFinishedBefore(context.Context, time.Time) (int, error) {
	return 0, nil
}

func newFakeRepositories() (*repository.Repositories, *fakeUserRepository, *fakeSessionRepository, *fakeProfileRepository, *fakeDeliveryRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	profiles := newFakeProfileRepository()
	deliveries := newFakeDeliveryRepository()
	return &repository.Repositories{
		UserRepository:     users,
		ProfileRepository:  profiles,
		SessionRepository:  sessions,
		DeliveryRepository: deliveries,
	}, users, sessions, profiles, deliveries
}

// uniqueViolationError mimics a PostgreSQL unique_violation surfaced by the
// driver when an insert loses the race against a unique index.
type uniqueViolationError struct {
	constraint string
	table      string
}

func (e uniqueViolationError) Error() string {
	return "duplicate key value violates unique constraint " + e.constraint
}

func (e uniqueViolationError) Field(k byte) string {
	switch k {
	case 'C':
		return "23505"
	case 'n':
		return e.constraint
	case 't':
		return e.table
	}
	return ""
}

// fakeQueue records enqueued jobs.
type fakeQueue struct {
	mu   sync.Mutex
	jobs []*entity.DeliveryJob
}

func (f *fakeQueue) Enqueue(_ context.Context, job *entity.DeliveryJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) Dequeue(context.Context, []string) (*entity.DeliveryJob, error) {
	return nil, nil
}

func (f *fakeQueue) MarkProcessing(context.Context, string) error { return nil }
func (f *fakeQueue) MarkCompleted(context.Context, string) error  { return nil }
func (f *fakeQueue) MarkFailed(context.Context, string, time.Duration) error {
	return nil
}
func (f *fakeQueue) GetQueueDepth(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeQueue) GetProcessingJobs(context.Context) ([]string, error)  { return nil, nil }

// fakeVerifier issues a fixed code without redis. Like the real verifier it
// only recognizes a code under the scope it was issued for.
type fakeVerifier struct {
	code        string
	issueErr    error
	verifyErr   error
	issued      int
	issuedScope string
}

func (f *fakeVerifier) IssueCode(_ context.Context, userID uuid.UUID, scope, _ string) (string, string, error) {
	if f.issueErr != nil {
		return "", "", f.issueErr
	}
	f.issued++
	f.issuedScope = scope
	return f.code, "verification:code:" + userID.String() + ":" + scope, nil
}

func (f *fakeVerifier) VerifyCode(_ context.Context, _ uuid.UUID, scope, code string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	if f.issuedScope != "" && scope != f.issuedScope {
		return verification.ErrCodeExpired
	}
	if code != f.code {
		return verification.ErrCodeMismatch
	}
	return nil
}

func (f *fakeVerifier) PeekCode(context.Context, string) (string, error) {
	return f.code, nil
}
