package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jaeminyoo/homepoint/internal/cache"
	"github.com/jaeminyoo/homepoint/internal/models"
)

const catalogTTL = 5 * time.Minute

// OrderService owns order creation and gateway session creation. It reads
// the product catalog through its own TTL cache; callers that change the
// catalog must call InvalidateProduct.
type OrderService struct {
	catalog *cache.Cache[string, models.Product]
}

func NewOrderService() *OrderService {
	return &OrderService{
		catalog: cache.New[string, models.Product](catalogTTL),
	}
}

func (s *OrderService) lookupProduct(db *gorm.DB, productID string) (models.Product, error) {
	if product, ok := s.catalog.Get(productID); ok {
		return product, nil
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrUnknownProduct
		}
		return models.Product{}, err
	}

	s.catalog.Set(productID, product)
	return product, nil
}

func (s *OrderService) InvalidateProduct(productID string) {
	s.catalog.Invalidate(productID)
}

// CreateOrder writes a READY order priced from the catalog. The only side
// effect is the single insert.
func (s *OrderService) CreateOrder(db *gorm.DB, accountID uuid.UUID, productID string) (*models.PaymentOrder, error) {
	product, err := s.lookupProduct(db, productID)
	if err != nil {
		return nil, err
	}

	order := models.PaymentOrder{
		AccountID: accountID,
		ProductID: product.ID,
		Amount:    product.AmountSupplyKRW,
		Status:    models.OrderStatusReady,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateSession attaches a gateway transaction id to a READY order and
// returns the checkout redirect URL. The tx id write is a compare-and-set
// guarded on status = READY and no existing tx id, so two racing calls can
// never leave the order with divergent sessions: the loser observes the
// winner's tx id and returns that session instead.
func (s *OrderService) CreateSession(db *gorm.DB, orderID, accountID uuid.UUID, provider, gatewayBaseURL string) (string, error) {
	var redirectURL string

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.PaymentOrder
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.AccountID != accountID {
			return ErrForbidden
		}
		if order.Status != models.OrderStatusReady {
			return ErrInvalidStatus
		}

		if order.GatewayTxID == nil {
			txID := uuid.NewString()
			res := tx.Model(&models.PaymentOrder{}).
				Where("id = ? AND status = ? AND gateway_tx_id IS NULL", orderID, models.OrderStatusReady).
				Updates(map[string]interface{}{
					"gateway_tx_id":    txID,
					"gateway_provider": provider,
					"updated_at":       time.Now().UTC(),
				})
			if res.Error != nil {
				return res.Error
			}

			// RowsAffected == 0 means a concurrent session creation or
			// finalization won the race; the re-read below decides.
			if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
				return err
			}
			if order.GatewayTxID == nil {
				return ErrInvalidStatus
			}
		}

		redirectURL = fmt.Sprintf("%s/checkout?orderId=%s&txId=%s", gatewayBaseURL, order.ID, *order.GatewayTxID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return redirectURL, nil
}

// GetOrder reads one order for status polling, owner only.
func GetOrder(db *gorm.DB, orderID, accountID uuid.UUID) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, ErrForbidden
	}
	return &order, nil
}
