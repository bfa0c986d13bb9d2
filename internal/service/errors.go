package service

import (
	"errors"

	"go-news-gateway/internal/domain"
)

// writeErr 写路径不降级：不可达 → 503，约束冲突 → 400，找不到 → 404
func writeErr(op string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	var se *domain.StoreError
	if errors.As(err, &se) {
		switch se.Fault {
		case domain.FaultConnectivity:
			return domain.Unavailable(err)
		case domain.FaultConstraint:
			return &domain.Error{Kind: domain.KindValidation, Msg: "request conflicts with existing data", Err: err}
		case domain.FaultNotFound:
			return &domain.Error{Kind: domain.KindNotFound, Msg: "not found", Err: err}
		}
	}
	return domain.Internal(op+" failed", err)
}
