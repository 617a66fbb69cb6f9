package service

import (
	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
)

// writeErr turns a write outcome into the matching sentinel error.
func writeErr(res model.WriteResult, err error) error {
	if err != nil {
		return err
	}
	switch res {
	case model.WriteOK:
		return nil
	case model.WriteNotFound:
		return errs.ErrNotFound
	case model.WriteInvalid:
		return errs.ErrInvalid
	default:
		return errs.ErrConflict
	}
}
