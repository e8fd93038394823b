package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rentbook/rentbook/internal/config"
	"github.com/rentbook/rentbook/internal/models"
	"github.com/sirupsen/logrus"
)

// TransactionClient handles integration with the remote transaction store
type TransactionClient struct {
	baseURL   string
	pageLimit int
	client    *http.Client
	log       *logrus.Logger
}

// NewTransactionClient initializes a new transaction store client
func NewTransactionClient(cfg *config.Config, log *logrus.Logger) *TransactionClient {
	return &TransactionClient{
		baseURL:   cfg.APIBaseURL,
		pageLimit: cfg.TxPageLimit,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// ListTransactions retrieves one page of a profile's transactions. A zero
// start or end leaves the corresponding date filter off.
func (c *TransactionClient) ListTransactions(ctx context.Context, profileID string, start, end time.Time, page, limit int) (*models.TransactionPage, error) {
	url := fmt.Sprintf("%s/user/getAllTransactions/%s", c.baseURL, profileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	q := req.URL.Query()
	if !start.IsZero() {
		q.Set("startDate", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		q.Set("endDate", end.Format(time.RFC3339))
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "list transactions", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "list transactions", Status: resp.StatusCode}
	}

	var result models.TransactionPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %v", err)
	}

	c.log.Debugf("Fetched %d transactions for profile %s (page %d)", len(result.Items), profileID, page)
	return &result, nil
}

// ListAllTransactions walks every page of a profile's transactions inside the
// given window and returns them as one slice.
func (c *TransactionClient) ListAllTransactions(ctx context.Context, profileID string, start, end time.Time) ([]models.Transaction, error) {
	var all []models.Transaction
	for page := 1; ; page++ {
		pg, err := c.ListTransactions(ctx, profileID, start, end, page, c.pageLimit)
		if err != nil {
			return nil, err
		}
		all = append(all, pg.Items...)
		if len(pg.Items) == 0 || pg.Pagination.TotalPages == 0 || page >= pg.Pagination.TotalPages {
			break
		}
	}
	return all, nil
}

// CreateTransaction records a payment in the transaction store. Each request
// carries a fresh idempotency key so a retried submit cannot double-record.
func (c *TransactionClient) CreateTransaction(ctx context.Context, tx models.NewTransaction) (*models.Transaction, error) {
	body, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction: %v", err)
	}

	url := fmt.Sprintf("%s/user/newTransaction", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "create transaction", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &TransportError{Op: "create transaction", Status: resp.StatusCode}
	}

	var env struct {
		Transaction models.Transaction `json:"transaction"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode created transaction: %v", err)
	}

	c.log.Infof("Transaction recorded for profile %s", tx.ProfileID)
	return &env.Transaction, nil
}
