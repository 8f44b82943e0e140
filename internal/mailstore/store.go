package mailstore

import (
	"errors"

	"mail-digest/internal/models"
)

// ErrFolderNotFound reports a folder path whose segments do not all resolve.
var ErrFolderNotFound = errors.New("folder not found")

// Folder is an opaque handle to a resolved mailbox.
type Folder struct {
	Name string
}

type Store interface {
	Connect(server string) error
	Login(user, password string) error
	ResolveFolder(path string) (Folder, error)
	ListRecent(folder Folder, max int) ([]models.MailItem, error)
	Close() error
}
