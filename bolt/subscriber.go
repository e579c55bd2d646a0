package bolt

import (
	"sort"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/q"
	"github.com/go-errors/errors"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

type subscriptionService struct {
	db *DB
}

func NewSubscriptionService(db *DB) visiontech.SubscriptionService {
	return &subscriptionService{
		db: db,
	}
}

// Subscribe creates a new active subscriber, or reactivates an existing
// non-active one. The second return value reports reactivation. A subscriber
// that is already active is a conflict, not a mutation.
func (ss *subscriptionService) Subscribe(email, name string) (*visiontech.Subscriber, bool, error) {
	email = visiontech.NormalizeEmail(email)

	existing, err := ss.findByEmail(email)
	if err == nil {
		if existing.Status == visiontech.StatusActive {
			return nil, false, &visiontech.Error{
				Code:    visiontech.ErrConflict,
				Message: "Already subscribed",
				Op:      "Subscribe",
			}
		}

		// Reactivation keeps the original token untouched.
		existing.Status = visiontech.StatusActive
		if err := ss.db.stormDB.Save(existing); err != nil {
			return nil, false, errors.Errorf("failed to save: %v", err)
		}

		return existing, true, nil
	}
	if err != storm.ErrNotFound {
		return nil, false, errors.Errorf("failed to find by email: %v", err)
	}

	sub, err := visiontech.NewSubscriber(email, name)
	if err != nil {
		return nil, false, err
	}

	if err := ss.db.stormDB.Save(sub); err != nil {
		// Two concurrent subscribes for the same email may both miss the
		// lookup above; the unique index decides, and the loser surfaces
		// as a conflict.
		if err == storm.ErrAlreadyExists {
			return nil, false, &visiontech.Error{
				Code:    visiontech.ErrConflict,
				Message: "Already subscribed",
				Op:      "Subscribe",
				Err:     err,
			}
		}
		return nil, false, errors.Errorf("failed to save: %v", err)
	}

	return sub, false, nil
}

func (ss *subscriptionService) findByEmail(email string) (*visiontech.Subscriber, error) {
	var s visiontech.Subscriber
	if err := ss.db.stormDB.One("Email", email, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// FindAll returns every subscriber, newest signup first.
func (ss *subscriptionService) FindAll() ([]visiontech.Subscriber, error) {
	var subscribers []visiontech.Subscriber
	if err := ss.db.stormDB.All(&subscribers); err != nil {
		return nil, errors.Errorf("failed to list subscribers: %v", err)
	}

	sort.Slice(subscribers, func(i, j int) bool {
		return subscribers[i].SignupDate.After(subscribers[j].SignupDate)
	})

	return subscribers, nil
}

// FindActive returns the current dispatch recipient set.
func (ss *subscriptionService) FindActive() ([]visiontech.Subscriber, error) {
	var subscribers []visiontech.Subscriber
	err := ss.db.stormDB.Find("Status", visiontech.StatusActive, &subscribers)
	if err != nil && err != storm.ErrNotFound {
		return nil, errors.Errorf("failed to find by status: %v", err)
	}

	return subscribers, nil
}

// FindByToken finds a subscriber by unsubscribe token. An unknown token is
// indistinguishable from a forged one: both are not_found.
func (ss *subscriptionService) FindByToken(token string) (*visiontech.Subscriber, error) {
	var s visiontech.Subscriber
	if err := ss.db.stormDB.One("UnsubscribeToken", token, &s); err != nil {
		if err == storm.ErrNotFound {
			return nil, &visiontech.Error{
				Code:    visiontech.ErrNotFound,
				Message: "Invalid unsubscribe link",
				Op:      "FindByToken",
			}
		}
		return nil, errors.Errorf("failed to find by token: %v", err)
	}

	return &s, nil
}

// UnsubscribeByToken marks the matching subscriber unsubscribed. Repeating
// the call leaves the record unsubscribed; it only fails once the record has
// been deleted.
func (ss *subscriptionService) UnsubscribeByToken(token string) error {
	s, err := ss.FindByToken(token)
	if err != nil {
		return err
	}

	s.Status = visiontech.StatusUnsubscribed
	if err := ss.db.stormDB.Save(s); err != nil {
		return errors.Errorf("failed to save: %v", err)
	}

	return nil
}

// DeleteByToken permanently removes the matching subscriber record. It does
// not require the record to be active.
func (ss *subscriptionService) DeleteByToken(token string) error {
	s, err := ss.FindByToken(token)
	if err != nil {
		return err
	}

	if err := ss.db.stormDB.DeleteStruct(s); err != nil {
		return errors.Errorf("failed to delete: %v", err)
	}

	return nil
}

// Stats returns live status counts, queried at call time.
func (ss *subscriptionService) Stats() (*visiontech.SubscriberStats, error) {
	total, err := ss.db.stormDB.Count(&visiontech.Subscriber{})
	if err != nil {
		return nil, errors.Errorf("failed to count subscribers: %v", err)
	}

	stats := &visiontech.SubscriberStats{Total: total}

	for status, dst := range map[string]*int{
		visiontech.StatusActive:       &stats.Active,
		visiontech.StatusUnsubscribed: &stats.Unsubscribed,
		visiontech.StatusPending:      &stats.Pending,
	} {
		n, err := ss.db.stormDB.Select(q.Eq("Status", status)).Count(&visiontech.Subscriber{})
		if err != nil {
			return nil, errors.Errorf("failed to count %s subscribers: %v", status, err)
		}
		*dst = n
	}

	return stats, nil
}
