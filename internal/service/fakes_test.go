package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/therealadik/card-management/internal/models"
	"github.com/therealadik/card-management/internal/repository"
)

// Фейковые репозитории в памяти. fakeTxManager сериализует единицы работы
// общим мьютексом — аналог блокировки строки карты в БД.

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeCardRepo struct {
	mu     sync.Mutex
	nextID int64
	cards  map[int64]*models.Card
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: make(map[int64]*models.Card)}
}

func (r *fakeCardRepo) Create(_ context.Context, card *models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	card.ID = r.nextID
	card.CreatedAt = time.Now()
	cp := *card
	r.cards[card.ID] = &cp
	return nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, id int64) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	cp := *card
	return &cp, nil
}

func (r *fakeCardRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Card, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeCardRepo) ExistsByEncryptedNumber(_ context.Context, encrypted string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, card := range r.cards {
		if card.EncryptedCardNumber == encrypted {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCardRepo) ExistsByIDAndUser(_ context.Context, id, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[id]
	return ok && card.UserID == userID, nil
}

func (r *fakeCardRepo) UpdateStatus(_ context.Context, id int64, status models.CardStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[id]
	if !ok {
		return repository.ErrCardNotFound
	}
	card.Status = status
	return nil
}

func (r *fakeCardRepo) UpdateLimits(_ context.Context, id int64, daily, monthly decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[id]
	if !ok {
		return repository.ErrCardNotFound
	}
	card.DailyLimit = daily
	card.MonthlyLimit = monthly
	return nil
}

func (r *fakeCardRepo) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	card, ok := r.cards[id]
	if !ok {
		return repository.ErrCardNotFound
	}
	card.Balance = balance
	return nil
}

func (r *fakeCardRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[id]; !ok {
		return repository.ErrCardNotFound
	}
	delete(r.cards, id)
	return nil
}

func (r *fakeCardRepo) List(_ context.Context, filter repository.CardFilter, page repository.PageRequest) ([]*models.Card, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*models.Card, 0, len(r.cards))
	for id := int64(1); id <= r.nextID; id++ {
		card, ok := r.cards[id]
		if !ok {
			continue
		}
		if filter.Status != nil && card.Status != *filter.Status {
			continue
		}
		if filter.UserID != nil && card.UserID != *filter.UserID {
			continue
		}
		cp := *card
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	from := page.Offset()
	if from > len(matched) {
		return nil, total, nil
	}
	to := from + page.Limit()
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to], total, nil
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	nextID       int64
	transactions []*models.Transaction
	cards        *fakeCardRepo
}

func newFakeTransactionRepo(cards *fakeCardRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{cards: cards}
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	transaction.ID = r.nextID
	cp := *transaction
	r.transactions = append(r.transactions, &cp)
	return nil
}

func (r *fakeTransactionRepo) WithdrawalSum(_ context.Context, cardID int64, from, to time.Time) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := decimal.Zero
	for _, t := range r.transactions {
		if t.CardID != cardID || t.Type != models.TransactionWithdrawal {
			continue
		}
		if t.Timestamp.Before(from) || t.Timestamp.After(to) {
			continue
		}
		sum = sum.Add(t.Amount)
	}
	return sum, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, filter repository.TransactionFilter, page repository.PageRequest) ([]*models.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*models.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.CardID != nil && t.CardID != *filter.CardID {
			continue
		}
		if filter.UserID != nil {
			card, ok := r.cards.cards[t.CardID]
			if !ok || card.UserID != *filter.UserID {
				continue
			}
		}
		cp := *t
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	from := page.Offset()
	if from > len(matched) {
		return nil, total, nil
	}
	to := from + page.Limit()
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to], total, nil
}

func (r *fakeTransactionRepo) DeleteByCardID(_ context.Context, cardID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.transactions[:0]
	for _, t := range r.transactions {
		if t.CardID != cardID {
			kept = append(kept, t)
		}
	}
	r.transactions = kept
	return nil
}

// byCard возвращает копии всех транзакций карты (для проверок в тестах).
func (r *fakeTransactionRepo) byCard(cardID int64) []models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Transaction{}
	for _, t := range r.transactions {
		if t.CardID == cardID {
			out = append(out, *t)
		}
	}
	return out
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, repository.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
