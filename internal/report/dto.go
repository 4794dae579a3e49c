package report

import (
	"encoding/json"
	"factory-location-planner/internal/domain"
	"factory-location-planner/internal/services"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
)

// DefaultRouteEpsilon is the smallest quantity reported as a route when no
// tolerance is given.
const DefaultRouteEpsilon = 1e-9

func routeEpsilon(eps float64) float64 {
	if eps <= 0 {
		return DefaultRouteEpsilon
	}
	return eps
}

type FactoryResponse struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Capacity float64 `json:"capacity"`
}

type WholesalerResponse struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Demand float64 `json:"demand"`
}

type RouteResponse struct {
	FactoryID    int     `json:"factory_id"`
	WholesalerID int     `json:"wholesaler_id"`
	Quantity     float64 `json:"quantity"`
	Distance     float64 `json:"distance"`
}

type PlanResponse struct {
	Cost      float64         `json:"cost"`
	Shipments [][]float64     `json:"shipments"`
	Routes    []RouteResponse `json:"routes"`
}

type BaselineResponse struct {
	Feasible bool          `json:"feasible"`
	Plan     *PlanResponse `json:"plan,omitempty"`
}

type CandidateResponse struct {
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Capacity float64      `json:"capacity"`
	Plan     PlanResponse `json:"plan"`
}

type GridResponse struct {
	XValues int `json:"x_values"`
	YValues int `json:"y_values"`
	Cells   int `json:"cells"`
}

type ReportResponse struct {
	RunID       string               `json:"run_id"`
	Factories   []FactoryResponse    `json:"factories"`
	Wholesalers []WholesalerResponse `json:"wholesalers"`
	Baseline    BaselineResponse     `json:"baseline"`
	Best        *CandidateResponse   `json:"best,omitempty"`
	Improvement *float64             `json:"improvement,omitempty"`
	Grid        GridResponse         `json:"grid"`
	DurationMS  int64                `json:"duration_ms"`
}

// NewReportResponse maps a run report onto its JSON shape. Arcs carrying no
// more than eps are left out of the route lists.
func NewReportResponse(r *services.LocationReport, eps float64) ReportResponse {
	out := ReportResponse{
		RunID:       r.RunID,
		Factories:   factoryResponses(r.Factories),
		Wholesalers: make([]WholesalerResponse, len(r.Wholesalers)),
		Baseline:    BaselineResponse{Feasible: r.Baseline.Feasible},
		DurationMS:  r.Duration.Milliseconds(),
	}
	for i, w := range r.Wholesalers {
		out.Wholesalers[i] = WholesalerResponse{ID: w.ID, X: w.Location.X, Y: w.Location.Y, Demand: w.Demand}
	}

	if r.Baseline.Feasible {
		p := planResponse(r.Baseline.Result.Cost, r.Baseline.Result.Plan, r.Factories, r.Wholesalers, eps)
		out.Baseline.Plan = &p
	}

	if s := r.Search; s != nil {
		out.Grid = GridResponse{XValues: len(s.XValues), YValues: len(s.YValues), Cells: len(s.Cells)}
		if b := s.Best; b != nil {
			out.Best = &CandidateResponse{
				X:        b.Location.X,
				Y:        b.Location.Y,
				Capacity: b.Factories[len(b.Factories)-1].Capacity,
				Plan:     planResponse(b.Cost, b.Plan, b.Factories, r.Wholesalers, eps),
			}
		}
	}

	if saving, ok := r.Improvement(); ok {
		out.Improvement = &saving
	}

	return out
}

func factoryResponses(factories []domain.Factory) []FactoryResponse {
	out := make([]FactoryResponse, len(factories))
	for i, f := range factories {
		out[i] = FactoryResponse{ID: f.ID, X: f.Location.X, Y: f.Location.Y, Capacity: f.Capacity}
	}
	return out
}

func planResponse(cost float64, plan *domain.ShipmentPlan, factories []domain.Factory, wholesalers []domain.Wholesaler, eps float64) PlanResponse {
	routes := plan.Routes(routeEpsilon(eps))
	out := PlanResponse{
		Cost:      cost,
		Shipments: plan.Rows(),
		Routes:    make([]RouteResponse, len(routes)),
	}
	for k, rt := range routes {
		f, w := factories[rt.Factory], wholesalers[rt.Wholesaler]
		out.Routes[k] = RouteResponse{
			FactoryID:    f.ID,
			WholesalerID: w.ID,
			Quantity:     rt.Quantity,
			Distance:     floats.Distance(f.Location.Vec(), w.Location.Vec(), 2),
		}
	}
	return out
}

// WriteJSON encodes v as indented JSON into path, creating parent directories.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write json: create dir for %q: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write json: create %q: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write json: encode %q: %w", path, err)
	}

	return f.Close()
}
