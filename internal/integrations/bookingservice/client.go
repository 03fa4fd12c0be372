package bookingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/USMarket/USM-CheckoutService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с BookingService
//
// Таймаут задаётся щедрым (по умолчанию 30 секунд): запись бронирования
// на стороне бэкенда бывает медленной, и обрывать её раньше времени нельзя
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BookingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateBooking создает бронирование
// Единственный внешний write-вызов сервиса оформления. На не-2xx ответ
// возвращает *APIError с серверным сообщением (если сервис его прислал)
func (c *Client) CreateBooking(ctx context.Context, request *domain.BookingRequest) (*BookingRecord, error) {
	url := fmt.Sprintf("%s/internal/bookings", c.baseURL)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, c.parseError(resp)
	}

	var record BookingRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &record, nil
}

// parseError разбирает тело ошибки BookingService
// Приоритет сообщения: структурированная ошибка error.message,
// затем общее message верхнего уровня
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		switch {
		case errResp.Error != nil && errResp.Error.Message != "":
			apiErr.Code = errResp.Error.Code
			apiErr.Message = errResp.Error.Message
		case errResp.Message != "":
			apiErr.Message = errResp.Message
		}
	}

	if apiErr.Message == "" {
		c.log.Warn("CreateBooking: unparseable error body, status=%d: %s", resp.StatusCode, string(body))
	}

	return apiErr
}
