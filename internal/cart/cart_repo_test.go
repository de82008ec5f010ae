package cart_test

import (
	"context"
	"testing"
	"time"

	"go-grocer-api/internal/cart"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartRepository_CreateCart(t *testing.T) {
	db, mockDB, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := cart.NewRepository(db)
	ctx := context.Background()

	t.Run("returns_existing_cart_on_conflicting_insert", func(t *testing.T) {
		userID := uuid.New()
		existingCartID := uuid.New()
		createdAt := time.Now().Add(-time.Hour)

		mockDB.ExpectQuery(`INSERT INTO carts \(id, user_id\) VALUES \(\$1, \$2\)\s+ON CONFLICT \(user_id\) DO UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
				AddRow(existingCartID.String(), userID.String(), createdAt))

		c, err := repo.CreateCart(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, existingCartID, c.ID)
		assert.Equal(t, userID, c.UserID)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})
}
