package notify

import (
	"context"
	"time"

	"courier-billing-backend/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Notifier writes notification records off the billing critical path.
// Failures are logged and dropped, never propagated.
type Notifier struct {
	store Store
	log   *zap.Logger
}

func NewNotifier(store Store, log *zap.Logger) *Notifier {
	return &Notifier{store: store, log: log.Named("notify")}
}

func (n *Notifier) Notify(accountCode, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := n.store.Create(ctx, &models.Notification{
			ID:          uuid.New(),
			AccountCode: accountCode,
			Subject:     subject,
			Body:        body,
			CreatedAt:   time.Now(),
		})
		if err != nil {
			n.log.Warn("notification write failed",
				zap.String("account", accountCode),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}
