package ecb

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/currency_app/internal/apperrors"
	"github.com/SscSPs/currency_app/internal/core/domain"
)

// Element and attribute names of the SDMX structure-specific data format.
const (
	elemSeries = "Series"
	elemObs    = "Obs"

	attrCurrency      = "CURRENCY"
	attrCurrencyDenom = "CURRENCY_DENOM"
	attrTitle         = "TITLE"
	attrTitleCompl    = "TITLE_COMPL"
	attrTimePeriod    = "TIME_PERIOD"
	attrObsValue      = "OBS_VALUE"
)

type series struct {
	currency      string
	currencyDenom string
	title         string
	titleCompl    string
}

// Parse decodes a feed document into row outcomes.
// Series whose CURRENCY_DENOM is not EUR are skipped entirely. An observation with an
// unparseable TIME_PERIOD yields a skipped row; malformed XML or a non-numeric OBS_VALUE
// fails the whole document with an error wrapping apperrors.ErrFetch.
func Parse(r io.Reader) ([]domain.FeedRow, error) {
	dec := xml.NewDecoder(r)

	var (
		rows    []domain.FeedRow
		current *series // nil outside a Series or inside a non-EUR one
		inDoc   bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed XML: %v", apperrors.ErrFetch, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			inDoc = true
			switch t.Name.Local {
			case elemSeries:
				current = nil
				if attr(t, attrCurrencyDenom) == domain.BaseCurrency {
					current = &series{
						currency:      attr(t, attrCurrency),
						currencyDenom: attr(t, attrCurrencyDenom),
						title:         attr(t, attrTitle),
						titleCompl:    attr(t, attrTitleCompl),
					}
				}
			case elemObs:
				if current == nil {
					continue
				}
				row, err := parseObs(current, t)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
		case xml.EndElement:
			if t.Name.Local == elemSeries {
				current = nil
			}
		}
	}

	if !inDoc {
		return nil, fmt.Errorf("%w: empty document", apperrors.ErrFetch)
	}
	return rows, nil
}

func parseObs(s *series, el xml.StartElement) (domain.FeedRow, error) {
	obs := domain.ExchangeRateObservation{
		Currency:         s.currency,
		CurrencyDenom:    s.currencyDenom,
		Title:            s.title,
		TitleDescription: s.titleCompl,
	}

	value, err := ParseObsValue(attr(el, attrObsValue))
	if err != nil {
		return domain.FeedRow{}, fmt.Errorf("%w: series %s: %v", apperrors.ErrFetch, s.currency, err)
	}
	obs.Value = value

	period := attr(el, attrTimePeriod)
	date, err := ParseTimePeriod(period)
	if err != nil {
		return domain.FeedRow{Observation: obs, Err: err}, nil
	}
	obs.ObservedDate = date

	return domain.FeedRow{Observation: obs}, nil
}

// ParseObsValue parses an OBS_VALUE attribute. An empty string or the SDMX missing-value
// marker NaN yields a nil value. Infinite values are rejected like any other non-numeric text.
func ParseObsValue(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OBS_VALUE %q: %w", s, err)
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	if math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid OBS_VALUE %q: not a finite number", s)
	}
	return &v, nil
}

// ParseTimePeriod parses a TIME_PERIOD attribute as an ISO calendar date.
// Failures wrap apperrors.ErrRowParse.
func ParseTimePeriod(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid TIME_PERIOD %q", apperrors.ErrRowParse, s)
	}
	return d, nil
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
