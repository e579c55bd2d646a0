package bolt

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/go-errors/errors"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

type newsletterService struct {
	db *DB
}

func NewNewsletterService(db *DB) visiontech.NewsletterService {
	return &newsletterService{
		db: db,
	}
}

// Create saves a new newsletter. Date defaults to now.
func (ns *newsletterService) Create(n *visiontech.Newsletter) error {
	if n.Date.IsZero() {
		n.Date = time.Now()
	}

	if err := ns.db.stormDB.Save(n); err != nil {
		return errors.Errorf("failed to save: %v", err)
	}

	return nil
}

// Find returns all newsletters, newest first.
func (ns *newsletterService) Find() ([]visiontech.Newsletter, error) {
	var newsletters []visiontech.Newsletter
	err := ns.db.stormDB.Select().OrderBy("Date").Reverse().Find(&newsletters)
	if err != nil && err != storm.ErrNotFound {
		return nil, errors.Errorf("failed to list newsletters: %v", err)
	}

	return newsletters, nil
}

func (ns *newsletterService) FindByID(id int) (*visiontech.Newsletter, error) {
	var n visiontech.Newsletter
	if err := ns.db.stormDB.One("ID", id, &n); err != nil {
		if err == storm.ErrNotFound {
			return nil, &visiontech.Error{
				Code:    visiontech.ErrNotFound,
				Message: "Not found",
				Op:      "FindByID",
			}
		}
		return nil, errors.Errorf("failed to find by id: %v", err)
	}

	return &n, nil
}

// Update applies a partial update: only non-nil fields change.
func (ns *newsletterService) Update(id int, upd *visiontech.NewsletterUpdate) (*visiontech.Newsletter, error) {
	n, err := ns.FindByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Description != nil {
		n.Description = *upd.Description
	}
	if upd.Content != nil {
		n.Content = *upd.Content
	}
	if upd.Author != nil {
		n.Author = *upd.Author
	}
	if upd.Date != nil {
		n.Date = *upd.Date
	}
	if upd.ImageURL != nil {
		n.ImageURL = *upd.ImageURL
	}

	if err := ns.db.stormDB.Save(n); err != nil {
		return nil, errors.Errorf("failed to save: %v", err)
	}

	return n, nil
}

func (ns *newsletterService) Delete(id int) error {
	n, err := ns.FindByID(id)
	if err != nil {
		return err
	}

	if err := ns.db.stormDB.DeleteStruct(n); err != nil {
		return errors.Errorf("failed to delete: %v", err)
	}

	return nil
}
