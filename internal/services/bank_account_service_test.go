package services

import (
	"context"
	"testing"
	"time"

	"tracker-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBankAccountRepo mirrors the storage-layer single-primary behavior so
// the service can be exercised without a database.
type fakeBankAccountRepo struct {
	accounts map[int]*models.BankAccount
	nextID   int
}

func newFakeBankAccountRepo() *fakeBankAccountRepo {
	return &fakeBankAccountRepo{accounts: make(map[int]*models.BankAccount), nextID: 1}
}

func (f *fakeBankAccountRepo) demoteOthers(keep int) {
	for id, a := range f.accounts {
		if id != keep {
			a.IsPrimary = false
		}
	}
}

// ensurePrimary mirrors the repository promotion: when no active primary
// remains, the oldest active account gets the flag.
func (f *fakeBankAccountRepo) ensurePrimary() {
	var oldest *models.BankAccount
	for _, a := range f.accounts {
		if !a.IsActive {
			continue
		}
		if a.IsPrimary {
			return
		}
		if oldest == nil || a.ID < oldest.ID {
			oldest = a
		}
	}
	if oldest != nil {
		oldest.IsPrimary = true
	}
}

func (f *fakeBankAccountRepo) Create(ctx context.Context, a *models.BankAccount) error {
	a.ID = f.nextID
	f.nextID++
	a.IsActive = true
	a.CreatedAt = time.Now()
	stored := *a
	f.accounts[a.ID] = &stored
	if a.IsPrimary {
		f.demoteOthers(a.ID)
	}
	f.ensurePrimary()
	a.IsPrimary = f.accounts[a.ID].IsPrimary
	return nil
}

func (f *fakeBankAccountRepo) Get(ctx context.Context, id int) (*models.BankAccount, error) {
	a, ok := f.accounts[id]
	if !ok || !a.IsActive {
		return nil, pgx.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (f *fakeBankAccountRepo) Update(ctx context.Context, a *models.BankAccount) error {
	if _, ok := f.accounts[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *a
	stored.IsActive = true
	f.accounts[a.ID] = &stored
	if a.IsPrimary {
		f.demoteOthers(a.ID)
	}
	f.ensurePrimary()
	a.IsPrimary = f.accounts[a.ID].IsPrimary
	return nil
}

func (f *fakeBankAccountRepo) SoftDelete(ctx context.Context, id int) error {
	a, ok := f.accounts[id]
	if !ok || !a.IsActive {
		return pgx.ErrNoRows
	}
	a.IsActive = false
	a.IsPrimary = false
	f.ensurePrimary()
	return nil
}

func (f *fakeBankAccountRepo) List(ctx context.Context) ([]*models.BankAccount, error) {
	var out []*models.BankAccount
	for _, a := range f.accounts {
		if a.IsActive {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func validAccountRequest() *models.BankAccountRequest {
	return &models.BankAccountRequest{
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountHolder: "PT Maju Jaya",
	}
}

func TestCreateBankAccountValidation(t *testing.T) {
	svc := NewBankAccountService(newFakeBankAccountRepo())
	ctx := context.Background()

	req := validAccountRequest()
	req.BankName = "  "
	_, err := svc.Create(ctx, req)
	assert.Error(t, err)

	req = validAccountRequest()
	req.AccountNumber = ""
	_, err = svc.Create(ctx, req)
	assert.Error(t, err)

	req = validAccountRequest()
	req.AccountHolder = ""
	_, err = svc.Create(ctx, req)
	assert.Error(t, err)

	req = validAccountRequest()
	req.AccountType = "offshore"
	_, err = svc.Create(ctx, req)
	assert.Error(t, err)
}

func TestCreateBankAccountDefaultsType(t *testing.T) {
	svc := NewBankAccountService(newFakeBankAccountRepo())

	account, err := svc.Create(context.Background(), validAccountRequest())
	require.NoError(t, err)
	assert.Equal(t, models.AccountTypeChecking, account.AccountType)
}

// activePrimaryCount counts active accounts carrying the primary flag.
func activePrimaryCount(t *testing.T, svc *BankAccountService) int {
	t.Helper()
	accounts, err := svc.List(context.Background())
	require.NoError(t, err)
	n := 0
	for _, a := range accounts {
		if a.IsPrimary {
			n++
		}
	}
	return n
}

func TestFirstAccountBecomesPrimary(t *testing.T) {
	svc := NewBankAccountService(newFakeBankAccountRepo())
	ctx := context.Background()

	// The flag was not requested; the first active account still gets it.
	a, err := svc.Create(ctx, validAccountRequest())
	require.NoError(t, err)
	assert.True(t, a.IsPrimary)

	second := validAccountRequest()
	second.AccountNumber = "222"
	b, err := svc.Create(ctx, second)
	require.NoError(t, err)
	assert.False(t, b.IsPrimary)

	assert.Equal(t, 1, activePrimaryCount(t, svc))
}

func TestDemotingSolePrimaryKeepsOnePrimary(t *testing.T) {
	svc := NewBankAccountService(newFakeBankAccountRepo())
	ctx := context.Background()

	first := validAccountRequest()
	first.IsPrimary = true
	a, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validAccountRequest()
	second.AccountNumber = "222"
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	// Demote the only primary; the oldest active account is re-promoted so
	// the flag never disappears while active accounts exist.
	demote := validAccountRequest()
	demote.IsPrimary = false
	_, err = svc.Update(ctx, a.ID, demote)
	require.NoError(t, err)

	assert.Equal(t, 1, activePrimaryCount(t, svc))

	storedA, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, storedA.IsPrimary)
}

func TestPrimaryFlagMovesBetweenAccounts(t *testing.T) {
	repo := newFakeBankAccountRepo()
	svc := NewBankAccountService(repo)
	ctx := context.Background()

	first := validAccountRequest()
	first.IsPrimary = true
	a, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validAccountRequest()
	second.AccountNumber = "0987654321"
	second.IsPrimary = true
	b, err := svc.Create(ctx, second)
	require.NoError(t, err)

	storedA, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	storedB, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)

	assert.False(t, storedA.IsPrimary)
	assert.True(t, storedB.IsPrimary)
}

func TestSoftDeletePromotesOldestActive(t *testing.T) {
	repo := newFakeBankAccountRepo()
	svc := NewBankAccountService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, validAccountRequest())
	require.NoError(t, err)

	second := validAccountRequest()
	second.AccountNumber = "222"
	second.IsPrimary = true
	b, err := svc.Create(ctx, second)
	require.NoError(t, err)

	require.NoError(t, svc.SoftDelete(ctx, b.ID))

	storedA, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, storedA.IsPrimary)

	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
