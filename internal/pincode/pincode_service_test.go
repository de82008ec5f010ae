package pincode_test

import (
	"context"
	"database/sql"
	"testing"

	"go-grocer-api/internal/pincode"
	pincodeerrors "go-grocer-api/internal/pincode/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ==================== FAKE REPO ====================

type fakePincodeRepo struct {
	pincodes    map[string]pincode.Pincode
	deliverable map[uuid.UUID]bool
	lookups     int
}

func (f *fakePincodeRepo) GetPincode(ctx context.Context, code string) (pincode.Pincode, error) {
	f.lookups++
	p, ok := f.pincodes[code]
	if !ok {
		return pincode.Pincode{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePincodeRepo) UpsertPincode(ctx context.Context, p pincode.Pincode) error {
	if f.pincodes == nil {
		f.pincodes = map[string]pincode.Pincode{}
	}
	f.pincodes[p.Pincode] = p
	return nil
}

func (f *fakePincodeRepo) DeliverableProducts(ctx context.Context, district string, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	for _, id := range ids {
		if f.deliverable[id] {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakePincodeRepo) AddZone(ctx context.Context, productID uuid.UUID, district string) error {
	if f.deliverable == nil {
		f.deliverable = map[uuid.UUID]bool{}
	}
	f.deliverable[productID] = true
	return nil
}

func (f *fakePincodeRepo) RemoveZone(ctx context.Context, productID uuid.UUID, district string) error {
	delete(f.deliverable, productID)
	return nil
}

type memoryCache struct {
	entries map[string]pincode.Pincode
}

func (m *memoryCache) Get(ctx context.Context, code string) (pincode.Pincode, bool) {
	p, ok := m.entries[code]
	return p, ok
}

func (m *memoryCache) Set(ctx context.Context, p pincode.Pincode) {
	if m.entries == nil {
		m.entries = map[string]pincode.Pincode{}
	}
	m.entries[p.Pincode] = p
}

// ==================== TEST CASES ====================

func TestPincodeService_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("format_rejected_before_lookup", func(t *testing.T) {
		repo := &fakePincodeRepo{}
		svc := pincode.NewService(repo, nil, nil)

		for _, code := range []string{"", "68200", "6820011", "68200a", "pincode"} {
			_, err := svc.Check(ctx, code)
			assert.ErrorIs(t, err, pincodeerrors.ErrInvalidPincode, "code %q", code)
		}
		assert.Zero(t, repo.lookups, "format errors must not reach the repository")
	})

	t.Run("resolves_district", func(t *testing.T) {
		repo := &fakePincodeRepo{
			pincodes: map[string]pincode.Pincode{
				"682001": {Pincode: "682001", District: "Ernakulam", Serviceable: true},
			},
		}
		svc := pincode.NewService(repo, nil, nil)

		res, err := svc.Check(ctx, "682001")
		assert.NoError(t, err)
		assert.Equal(t, "Ernakulam", res.District)
		assert.True(t, res.IsServiceable)
	})

	t.Run("unknown_pincode", func(t *testing.T) {
		svc := pincode.NewService(&fakePincodeRepo{}, nil, nil)

		_, err := svc.Check(ctx, "999999")
		assert.ErrorIs(t, err, pincodeerrors.ErrPincodeNotFound)
	})

	t.Run("second_check_served_from_cache", func(t *testing.T) {
		repo := &fakePincodeRepo{
			pincodes: map[string]pincode.Pincode{
				"682001": {Pincode: "682001", District: "Ernakulam", Serviceable: true},
			},
		}
		svc := pincode.NewService(repo, &memoryCache{}, nil)

		_, err := svc.Check(ctx, "682001")
		assert.NoError(t, err)
		_, err = svc.Check(ctx, "682001")
		assert.NoError(t, err)
		assert.Equal(t, 1, repo.lookups)
	})
}

func TestPincodeService_CheckDeliverability(t *testing.T) {
	ctx := context.Background()

	rice := uuid.New()
	dal := uuid.New()

	newRepo := func() *fakePincodeRepo {
		return &fakePincodeRepo{
			pincodes: map[string]pincode.Pincode{
				"682001": {Pincode: "682001", District: "Ernakulam", Serviceable: true},
				"110001": {Pincode: "110001", District: "New Delhi", Serviceable: false},
			},
			deliverable: map[uuid.UUID]bool{rice: true, dal: true},
		}
	}

	request := func(pin string) pincode.CheckDeliverabilityRequest {
		return pincode.CheckDeliverabilityRequest{
			Pincode: pin,
			Products: []pincode.ProductRef{
				{ID: rice.String(), Title: "Basmati Rice 1kg"},
				{ID: dal.String(), Title: "Toor Dal 500g"},
			},
		}
	}

	t.Run("all_deliverable", func(t *testing.T) {
		svc := pincode.NewService(newRepo(), nil, nil)

		res, err := svc.CheckDeliverability(ctx, request("682001"))
		assert.NoError(t, err)
		assert.True(t, res.IsAllDeliverable)
		assert.Equal(t, "Ernakulam", res.DeliveryDistrict)
		assert.Len(t, res.DeliverableProducts, 2)
		assert.Empty(t, res.NonDeliverableProducts)
	})

	t.Run("one_undeliverable_flips_aggregate", func(t *testing.T) {
		repo := newRepo()
		repo.deliverable[dal] = false
		svc := pincode.NewService(repo, nil, nil)

		res, err := svc.CheckDeliverability(ctx, request("682001"))
		assert.NoError(t, err)
		assert.False(t, res.IsAllDeliverable)
		assert.Len(t, res.DeliverableProducts, 1)
		assert.Len(t, res.NonDeliverableProducts, 1)
		assert.Equal(t, dal.String(), res.NonDeliverableProducts[0].ID)
		assert.Contains(t, res.NonDeliverableProducts[0].DeliveryMessage, "Not deliverable")
	})

	t.Run("unserviceable_pincode_is_business_rejection", func(t *testing.T) {
		svc := pincode.NewService(newRepo(), nil, nil)

		_, err := svc.CheckDeliverability(ctx, request("110001"))
		assert.ErrorIs(t, err, pincodeerrors.ErrPincodeNotServiceable)
	})

	t.Run("empty_product_list_rejected", func(t *testing.T) {
		svc := pincode.NewService(newRepo(), nil, nil)

		_, err := svc.CheckDeliverability(ctx, pincode.CheckDeliverabilityRequest{Pincode: "682001"})
		assert.Error(t, err)
	})

	t.Run("same_input_same_result", func(t *testing.T) {
		svc := pincode.NewService(newRepo(), nil, nil)

		first, err := svc.CheckDeliverability(ctx, request("682001"))
		assert.NoError(t, err)
		second, err := svc.CheckDeliverability(ctx, request("682001"))
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
