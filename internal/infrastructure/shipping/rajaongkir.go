// Package shipping talks to a RajaOngkir-compatible API for regional data,
// delivery prices and waybill tracking.
package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/shipping"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// errRejected marks provider answers that describe a bad request. They are
// returned to callers as invalid input and do not count against the breaker.
var errRejected = errors.New("shipping provider rejected the request")

// Client implements shipping.Provider against the RajaOngkir Pro API
type Client struct {
	baseURL    string
	apiKey     string
	couriers   []string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a provider client guarded by a circuit breaker
func NewClient(cfg config.ShippingConfig, zl *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	couriers := cfg.Couriers
	if len(couriers) == 0 {
		couriers = shipping.DefaultCouriers
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		couriers:   couriers,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    NewCircuitBreaker("shipping-provider", zl, errRejected),
	}
}

// envelope is the wrapper every RajaOngkir answer comes in
type envelope struct {
	RajaOngkir struct {
		Status struct {
			Code        int    `json:"code"`
			Description string `json:"description"`
		} `json:"status"`
		Results json.RawMessage `json:"results"`
		Result  json.RawMessage `json:"result"`
	} `json:"rajaongkir"`
}

// Provinces implements shipping.Provider
func (c *Client) Provinces(ctx context.Context) ([]shipping.Province, error) {
	var rows []struct {
		ProvinceID string `json:"province_id"`
		Province   string `json:"province"`
	}
	if err := c.get(ctx, "/province", nil, &rows); err != nil {
		return nil, err
	}

	provinces := make([]shipping.Province, 0, len(rows))
	for _, r := range rows {
		provinces = append(provinces, shipping.Province{ID: atoi(r.ProvinceID), Name: r.Province})
	}
	return provinces, nil
}

// Cities implements shipping.Provider
func (c *Client) Cities(ctx context.Context, provinceID int) ([]shipping.City, error) {
	var rows []struct {
		CityID     string `json:"city_id"`
		ProvinceID string `json:"province_id"`
		Type       string `json:"type"`
		CityName   string `json:"city_name"`
		PostalCode string `json:"postal_code"`
	}
	params := url.Values{"province": {strconv.Itoa(provinceID)}}
	if err := c.get(ctx, "/city", params, &rows); err != nil {
		return nil, err
	}

	cities := make([]shipping.City, 0, len(rows))
	for _, r := range rows {
		cities = append(cities, shipping.City{
			ID:         atoi(r.CityID),
			ProvinceID: atoi(r.ProvinceID),
			Type:       r.Type,
			Name:       r.CityName,
			PostalCode: r.PostalCode,
		})
	}
	return cities, nil
}

// Subdistricts implements shipping.Provider
func (c *Client) Subdistricts(ctx context.Context, cityID int) ([]shipping.Subdistrict, error) {
	var rows []struct {
		SubdistrictID   string `json:"subdistrict_id"`
		CityID          string `json:"city_id"`
		SubdistrictName string `json:"subdistrict_name"`
	}
	params := url.Values{"city": {strconv.Itoa(cityID)}}
	if err := c.get(ctx, "/subdistrict", params, &rows); err != nil {
		return nil, err
	}

	subdistricts := make([]shipping.Subdistrict, 0, len(rows))
	for _, r := range rows {
		subdistricts = append(subdistricts, shipping.Subdistrict{
			ID:     atoi(r.SubdistrictID),
			CityID: atoi(r.CityID),
			Name:   r.SubdistrictName,
		})
	}
	return subdistricts, nil
}

// Cost implements shipping.Provider. Options come back cheapest first.
func (c *Client) Cost(ctx context.Context, q shipping.CostQuery) ([]shipping.CostOption, error) {
	couriers := q.Couriers
	if len(couriers) == 0 {
		couriers = c.couriers
	}
	weight := q.Weight
	if weight < 1 {
		weight = 1
	}

	form := url.Values{
		"origin":          {strconv.Itoa(q.Origin)},
		"originType":      {"subdistrict"},
		"destination":     {strconv.Itoa(q.Destination)},
		"destinationType": {"subdistrict"},
		"weight":          {strconv.Itoa(weight)},
		"courier":         {strings.ToLower(strings.Join(couriers, ":"))},
	}

	var rows []struct {
		Code  string `json:"code"`
		Name  string `json:"name"`
		Costs []struct {
			Service     string `json:"service"`
			Description string `json:"description"`
			Cost        []struct {
				Value int64  `json:"value"`
				ETD   string `json:"etd"`
			} `json:"cost"`
		} `json:"costs"`
	}
	if err := c.post(ctx, "/cost", form, &rows); err != nil {
		return nil, err
	}

	var options []shipping.CostOption
	for _, courier := range rows {
		for _, svc := range courier.Costs {
			if len(svc.Cost) == 0 {
				continue
			}
			options = append(options, shipping.CostOption{
				Courier:     courier.Code,
				CourierName: courier.Name,
				Service:     svc.Service,
				Description: svc.Description,
				Cost:        svc.Cost[0].Value,
				ETD:         svc.Cost[0].ETD,
			})
		}
	}
	shipping.SortByCost(options)
	return options, nil
}

// Waybill implements shipping.Provider
func (c *Client) Waybill(ctx context.Context, number, courier string) (*shipping.Waybill, error) {
	form := url.Values{
		"waybill": {number},
		"courier": {strings.ToLower(courier)},
	}

	var result struct {
		Delivered bool `json:"delivered"`
		Summary   struct {
			Status string `json:"status"`
		} `json:"summary"`
		DeliveryStatus struct {
			Status      string `json:"status"`
			PodReceiver string `json:"pod_receiver"`
		} `json:"delivery_status"`
		Manifest []struct {
			Description string `json:"manifest_description"`
			Date        string `json:"manifest_date"`
			Time        string `json:"manifest_time"`
			CityName    string `json:"city_name"`
		} `json:"manifest"`
	}
	if err := c.post(ctx, "/waybill", form, &result); err != nil {
		return nil, err
	}

	status := result.DeliveryStatus.Status
	if status == "" {
		status = result.Summary.Status
	}
	wb := &shipping.Waybill{
		Number:    number,
		Courier:   strings.ToLower(courier),
		Status:    status,
		Delivered: result.Delivered,
		Receiver:  result.DeliveryStatus.PodReceiver,
		History:   make([]shipping.WaybillEvent, 0, len(result.Manifest)),
	}
	for _, m := range result.Manifest {
		at, _ := time.Parse("2006-01-02 15:04:05", strings.TrimSpace(m.Date+" "+m.Time))
		wb.History = append(wb.History, shipping.WaybillEvent{
			Time:        at,
			Location:    m.CityName,
			Description: m.Description,
		})
	}
	return wb, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+path, form, out)
}

// do runs one request through the breaker and decodes results (or result)
// into out
func (c *Client) do(ctx context.Context, method, endpoint string, form url.Values, out any) error {
	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.send(ctx, method, endpoint, form)
	})

	log := logger.L(ctx).With(
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Duration("latency", time.Since(start)),
	)
	if err != nil {
		if errors.Is(err, errRejected) {
			log.Info("shipping provider rejected request", zap.Error(err))
			return shared.ErrInvalidInput.WithMessage(strings.TrimPrefix(err.Error(), errRejected.Error()+": "))
		}
		log.Warn("shipping provider call failed", zap.Error(err))
		return fmt.Errorf("%w: %v", shared.ErrShippingUnavailable, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: decode response: %v", shared.ErrShippingUnavailable, err)
	}
	payload := env.RajaOngkir.Results
	if len(payload) == 0 || string(payload) == "null" {
		payload = env.RajaOngkir.Result
	}
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode results: %v", shared.ErrShippingUnavailable, err)
	}
	return nil
}

// send performs the HTTP exchange. Provider-side 4xx answers become
// errRejected; transport errors and 5xx answers are plain failures.
func (c *Client) send(ctx context.Context, method, endpoint string, form url.Values) ([]byte, error) {
	var reader io.Reader
	if form != nil {
		reader = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("provider answered %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", errRejected, describe(body, resp.StatusCode))
	}
	return body, nil
}

// describe extracts the provider's status description from an error body
func describe(body []byte, status int) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.RajaOngkir.Status.Description != "" {
		return env.RajaOngkir.Status.Description
	}
	return http.StatusText(status)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

var _ shipping.Provider = (*Client)(nil)
