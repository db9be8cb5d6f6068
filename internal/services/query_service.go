package services

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/maninivas13/farmasthi/internal/config"
	"github.com/maninivas13/farmasthi/internal/events"
	"github.com/maninivas13/farmasthi/internal/logger"
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
	"github.com/maninivas13/farmasthi/internal/services/dto"
	"github.com/maninivas13/farmasthi/pkg/apperrors"
)

// QueryService owns the query lifecycle: open -> assigned -> resolved,
// with closed as the administrative terminal state. Successful
// transitions emit events through the notifier; a notification failure
// is logged and never fails the transition itself.
type QueryService interface {
	Submit(farmerID string, req *dto.SubmitQueryRequest) (*models.Query, error)
	Get(queryID, userID string, role models.UserRole) (*models.Query, error)
	List(userID string, role models.UserRole, req *dto.ListQueriesRequest) (*dto.QueryListResponse, error)
	Assign(queryID, officerID string) (*models.Query, error)
	Reply(queryID, officerID string, req *dto.ReplyRequest) (*models.Query, error)
	Close(queryID string) (*models.Query, error)
	Statistics() (*dto.StatisticsResponse, error)
}

type queryService struct {
	queryRepo repositories.QueryRepository
	userRepo  repositories.UserRepository
	notifier  NotifierService
	cfg       *config.Config
}

func NewQueryService(
	queryRepo repositories.QueryRepository,
	userRepo repositories.UserRepository,
	notifier NotifierService,
	cfg *config.Config,
) QueryService {
	return &queryService{
		queryRepo: queryRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		cfg:       cfg,
	}
}

func (s *queryService) Submit(farmerID string, req *dto.SubmitQueryRequest) (*models.Query, error) {
	farmer, err := s.userRepo.FindByID(farmerID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("User not found")
	}
	if farmer.Role != models.UserRoleFarmer {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := minLength(req.QueryText, s.cfg.Queries.MinQueryChars, "query_text"); err != nil {
		return nil, err
	}

	query := &models.Query{
		FarmerID:   farmer.ID,
		FarmerName: farmer.Name,
		Location:   req.Location,
		CropType:   req.CropType,
		QueryText:  req.QueryText,
		Category:   req.Category,
		Urgency:    req.Urgency,
		ImagePath:  req.ImagePath,
		AudioPath:  req.AudioPath,
		Status:     models.QueryStatusOpen,
	}
	if query.Location == "" {
		query.Location = farmer.Location
	}
	if query.Category == "" {
		query.Category = models.QueryCategoryGeneral
	}
	if query.Urgency == "" {
		query.Urgency = models.QueryUrgencyNormal
	}

	if err := s.queryRepo.Create(query); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.route(events.QuerySubmitted{Query: query})
	return query, nil
}

func (s *queryService) Get(queryID, userID string, role models.UserRole) (*models.Query, error) {
	query, err := s.queryRepo.FindByID(queryID)
	if err != nil {
		if errors.Is(err, repositories.ErrQueryNotFound) {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Farmers only see their own queries; officers and admins see all.
	if role == models.UserRoleFarmer && query.FarmerID != userID {
		return nil, apperrors.ErrQueryAccessDenied
	}

	return query, nil
}

func (s *queryService) List(userID string, role models.UserRole, req *dto.ListQueriesRequest) (*dto.QueryListResponse, error) {
	filter := repositories.QueryFilter{
		Status: req.Status,
		Limit:  req.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.Queries.HistoryLimit
	}
	if filter.Limit > s.cfg.Queries.HistoryMaximum {
		filter.Limit = s.cfg.Queries.HistoryMaximum
	}
	if role == models.UserRoleFarmer {
		filter.FarmerID = userID
	}

	queries, err := s.queryRepo.Find(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.QueryListResponse{
		Queries: queries,
		Total:   len(queries),
	}, nil
}

// Assign moves an open query to assigned. The repository performs the
// transition conditionally, so with two racing officers exactly one wins
// and the loser gets a conflict.
func (s *queryService) Assign(queryID, officerID string) (*models.Query, error) {
	officer, err := s.userRepo.FindByID(officerID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("User not found")
	}
	if officer.Role != models.UserRoleOfficer && officer.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	query, err := s.queryRepo.AssignIfOpen(queryID, officer.ID, officer.Name)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrQueryNotFound):
			return nil, apperrors.ErrQueryNotFound
		case errors.Is(err, repositories.ErrQueryNotOpen):
			return nil, apperrors.ErrQueryAlreadyAssigned
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	s.route(events.QueryAssigned{Query: query})
	return query, nil
}

// Reply records an officer's answer. An open query is assigned to the
// replying officer first; under the strict reply policy only the
// already-assigned officer may reply. mark_resolved also transitions the
// query to resolved.
func (s *queryService) Reply(queryID, officerID string, req *dto.ReplyRequest) (*models.Query, error) {
	officer, err := s.userRepo.FindByID(officerID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("User not found")
	}
	if officer.Role != models.UserRoleOfficer && officer.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if err := minLength(req.ReplyText, s.cfg.Queries.MinReplyChars, "reply_text"); err != nil {
		return nil, err
	}

	query, err := s.queryRepo.FindByID(queryID)
	if err != nil {
		if errors.Is(err, repositories.ErrQueryNotFound) {
			return nil, apperrors.ErrQueryNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if query.Status == models.QueryStatusOpen {
		// Replying to an unassigned query claims it. Losing the
		// assignment race to another officer is fine; the reply
		// proceeds under the policy check below.
		assigned, err := s.queryRepo.AssignIfOpen(queryID, officer.ID, officer.Name)
		switch {
		case err == nil:
			query = assigned
			s.route(events.QueryAssigned{Query: assigned})
		case errors.Is(err, repositories.ErrQueryNotOpen):
			query, err = s.queryRepo.FindByID(queryID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if s.cfg.Queries.ReplyPolicy == config.ReplyPolicyStrict && query.AssignedTo != officer.ID {
		return nil, apperrors.ErrNotAssignedOfficer
	}

	query, err = s.queryRepo.SaveReply(queryID, req.ReplyText, req.MarkResolved)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrQueryNotFound):
			return nil, apperrors.ErrQueryNotFound
		case errors.Is(err, repositories.ErrQueryNotActive):
			return nil, apperrors.ErrInvalidTransition("queries", "Query cannot be replied to in its current state")
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	if req.MarkResolved {
		s.route(events.QueryResolved{Query: query})
	} else {
		s.route(events.QueryReplied{Query: query})
	}
	return query, nil
}

// Close archives a query. Closed is terminal; closing twice conflicts.
func (s *queryService) Close(queryID string) (*models.Query, error) {
	query, err := s.queryRepo.CloseIfActive(queryID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrQueryNotFound):
			return nil, apperrors.ErrQueryNotFound
		case errors.Is(err, repositories.ErrQueryClosed):
			return nil, apperrors.ErrInvalidTransition("queries", "Query is already closed")
		default:
			return nil, apperrors.InternalError(err)
		}
	}
	return query, nil
}

func (s *queryService) Statistics() (*dto.StatisticsResponse, error) {
	stats, err := s.queryRepo.Statistics()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var rate float64
	if stats.Total > 0 {
		rate = float64(stats.Resolved) / float64(stats.Total) * 100
		rate = math.Round(rate*100) / 100
	}

	officers, err := s.userRepo.CountByRole(models.UserRoleOfficer)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewStatisticsResponse(stats, rate, officers), nil
}

// minLength enforces the configured text minimums. The DTO tags carry
// the built-in floor; the config knobs may raise it per deployment.
func minLength(text string, minimum int, field string) error {
	if utf8.RuneCountInString(text) < minimum {
		return apperrors.ValidationError(map[string]string{
			field: fmt.Sprintf("Must be at least %d characters", minimum),
		})
	}
	return nil
}

func (s *queryService) route(event events.Event) {
	if err := s.notifier.Route(event); err != nil {
		logger.Error("notification routing failed", "event", event.Name(), "error", err.Error())
	}
}
