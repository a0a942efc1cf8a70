package services

import (
	"context"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/SscSPs/business_tracker/internal/dto"
	"github.com/SscSPs/business_tracker/internal/utils/pagination"
)

const defaultActivityLimit = 50

type activityService struct {
	BaseService
	store portsrepo.Store
}

// NewActivityService creates the activity feed reader.
func NewActivityService(store portsrepo.Store) portssvc.ActivitySvcFacade {
	return &activityService{store: store}
}

// ListActivity pages newest first. One extra row is fetched to decide whether a next page exists.
func (s *activityService) ListActivity(ctx context.Context, sess domain.Session, params dto.ListActivityParams) (*dto.ListActivityResponse, error) {
	if err := requireBusiness(sess); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	var after *portsrepo.ActivityCursor
	if params.NextToken != "" {
		ts, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, validationError("invalid nextToken: %v", err)
		}
		after = &portsrepo.ActivityCursor{Timestamp: ts, ActivityLogID: id}
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx)

	entries, err := uow.ActivityLogs().ListActivityLogs(ctx, sess.BusinessID, limit+1, after)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListActivityResponse{Items: entries}
	if len(entries) > limit {
		resp.Items = entries[:limit]
		last := resp.Items[limit-1]
		token := pagination.EncodeToken(last.Timestamp, last.ActivityLogID)
		resp.NextToken = &token
	}
	if resp.Items == nil {
		resp.Items = []domain.ActivityLog{}
	}
	return resp, nil
}
