package notify

import (
	"context"
	"errors"

	rv "github.com/hanksha/amenity-booking-backend/reservation"
	"go.uber.org/zap"
)

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notice rv.Notice) error {
	n.logger.Info(notice.Title, zap.String("description", notice.Description))
	return nil
}

// Multi sends each notice to every notifier and joins their errors.
type Multi []rv.Notifier

func (m Multi) Notify(ctx context.Context, notice rv.Notice) error {
	var errs []error

	for _, n := range m {
		if err := n.Notify(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// LogNavigator records navigation requests. The HTTP surface reports the
// route back to the client, which does the actual navigation.
type LogNavigator struct {
	logger *zap.Logger
}

func NewLogNavigator(logger *zap.Logger) *LogNavigator {
	return &LogNavigator{logger: logger}
}

func (n *LogNavigator) Navigate(route string) {
	n.logger.Debug("navigate", zap.String("route", route))
}
