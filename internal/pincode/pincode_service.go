package pincode

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	pincodeerrors "go-grocer-api/internal/pincode/errors"
	producterrors "go-grocer-api/internal/product/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var pincodeFormat = regexp.MustCompile(`^[0-9]{6}$`)

type Service interface {
	Check(ctx context.Context, code string) (CheckResponse, error)
	CheckDeliverability(ctx context.Context, req CheckDeliverabilityRequest) (DeliverabilityResponse, error)

	Upsert(ctx context.Context, req UpsertPincodeRequest) error
	AddZone(ctx context.Context, productID, district string) error
	RemoveZone(ctx context.Context, productID, district string) error
}

type service struct {
	repo     Repository
	cache    Cache
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(repo Repository, cache Cache, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewNoopCache()
	}
	return &service{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		logger:   logger.Named("pincode.service"),
	}
}

// resolve validates the format locally, then answers from cache or Postgres.
func (s *service) resolve(ctx context.Context, code string) (Pincode, error) {
	if !pincodeFormat.MatchString(code) {
		return Pincode{}, pincodeerrors.ErrInvalidPincode
	}

	if p, ok := s.cache.Get(ctx, code); ok {
		return p, nil
	}

	p, err := s.repo.GetPincode(ctx, code)
	if err == sql.ErrNoRows {
		return Pincode{}, pincodeerrors.ErrPincodeNotFound
	}
	if err != nil {
		return Pincode{}, err
	}

	s.cache.Set(ctx, p)
	return p, nil
}

func (s *service) Check(ctx context.Context, code string) (CheckResponse, error) {
	p, err := s.resolve(ctx, code)
	if err != nil {
		return CheckResponse{}, err
	}

	return CheckResponse{
		Pincode:       p.Pincode,
		District:      p.District,
		IsServiceable: p.Serviceable,
	}, nil
}

func (s *service) CheckDeliverability(ctx context.Context, req CheckDeliverabilityRequest) (DeliverabilityResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return DeliverabilityResponse{}, pincodeerrors.ErrInvalidPincode
	}

	p, err := s.resolve(ctx, req.Pincode)
	if err != nil {
		return DeliverabilityResponse{}, err
	}
	if !p.Serviceable {
		return DeliverabilityResponse{}, pincodeerrors.ErrPincodeNotServiceable
	}

	ids := make([]uuid.UUID, 0, len(req.Products))
	for _, ref := range req.Products {
		id, err := uuid.Parse(ref.ID)
		if err != nil {
			return DeliverabilityResponse{}, producterrors.ErrInvalidProductID
		}
		ids = append(ids, id)
	}

	deliverable, err := s.repo.DeliverableProducts(ctx, p.District, ids)
	if err != nil {
		s.logger.Error("deliverability lookup failed",
			zap.String("pincode", p.Pincode),
			zap.Error(err),
		)
		return DeliverabilityResponse{}, err
	}

	res := DeliverabilityResponse{
		Pincode:                p.Pincode,
		DeliveryDistrict:       p.District,
		IsAllDeliverable:       true,
		DeliverableProducts:    []ProductDeliverability{},
		NonDeliverableProducts: []ProductDeliverability{},
	}

	for i, ref := range req.Products {
		entry := ProductDeliverability{ID: ref.ID, Title: ref.Title}
		if deliverable[ids[i]] {
			entry.DeliveryMessage = fmt.Sprintf("Delivers to %s within 2-4 days", p.District)
			res.DeliverableProducts = append(res.DeliverableProducts, entry)
		} else {
			entry.DeliveryMessage = fmt.Sprintf("Not deliverable to %s", p.District)
			res.NonDeliverableProducts = append(res.NonDeliverableProducts, entry)
			res.IsAllDeliverable = false
		}
	}

	return res, nil
}

func (s *service) Upsert(ctx context.Context, req UpsertPincodeRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return pincodeerrors.ErrInvalidPincode
	}
	if !pincodeFormat.MatchString(req.Pincode) {
		return pincodeerrors.ErrInvalidPincode
	}

	p := Pincode{
		Pincode:     req.Pincode,
		District:    req.District,
		Serviceable: req.Serviceable,
	}
	if err := s.repo.UpsertPincode(ctx, p); err != nil {
		return err
	}

	// keep the cache in step with the new row
	s.cache.Set(ctx, p)
	return nil
}

func (s *service) AddZone(ctx context.Context, productID, district string) error {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return producterrors.ErrInvalidProductID
	}
	return s.repo.AddZone(ctx, pid, district)
}

func (s *service) RemoveZone(ctx context.Context, productID, district string) error {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return producterrors.ErrInvalidProductID
	}
	return s.repo.RemoveZone(ctx, pid, district)
}
