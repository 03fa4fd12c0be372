package start_checkout

import (
	"fmt"

	"github.com/USMarket/USM-CheckoutService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateOffering проверяет инвариант цен услуги:
// цена со скидкой, если указана, не превышает базовую
func validateOffering(offering *catalogservice.ServiceOffering) error {
	if offering.DiscountPrice == nil {
		return nil
	}

	if offering.BasePrice == nil {
		return fmt.Errorf("%w: discount price without base price", ErrOfferingInvalid)
	}

	if *offering.DiscountPrice > *offering.BasePrice {
		return fmt.Errorf("%w: discount price %.2f exceeds base price %.2f",
			ErrOfferingInvalid, *offering.DiscountPrice, *offering.BasePrice)
	}

	return nil
}
