package rest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/lintang-b-s/ltn/pkg/connectivity"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/lintang-b-s/ltn/pkg/network"
	"github.com/lintang-b-s/ltn/pkg/server"
	"github.com/lintang-b-s/ltn/pkg/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NeighborhoodService interface {
	Network() *network.RoadNetwork
	CreateNeighborhood(ctx context.Context, id string, perimeter neighborhood.Perimeter) (session.View, error)
	GetNeighborhood(ctx context.Context, id string) (session.View, error)
	ListNeighborhoods(ctx context.Context) []string
	CloseNeighborhood(ctx context.Context, id string) error
	SetPerimeter(ctx context.Context, id string, perimeter neighborhood.Perimeter) (session.View, error)
	TogglePointFilter(ctx context.Context, id string, road *datastructure.RoadID, pt datastructure.Coordinate) (datastructure.RoadID, bool, error)
	CycleDiagonalFilter(ctx context.Context, id string, i datastructure.IntersectionID) (bool, error)
	Undo(ctx context.Context, id string) error
	Cells(ctx context.Context, id string) (*connectivity.Connectivity, error)
	ShortcutsGeoJSON(ctx context.Context, id string) ([]byte, error)
	SaveNeighborhood(ctx context.Context, id string) error
	LoadNeighborhood(ctx context.Context, id string) (session.View, error)
	DeleteNeighborhood(ctx context.Context, id string) error
	NeighborhoodsNear(ctx context.Context, lat, lon, radiusKm float64) ([]string, error)
}

type NeighborhoodHandler struct {
	svc      NeighborhoodService
	m        *Metrics
	validate *validator.Validate
	trans    ut.Translator
}

func NeighborhoodRouter(r *chi.Mux, svc NeighborhoodService, m *Metrics) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NeighborhoodHandler{svc: svc, m: m, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/neighborhoods", func(r chi.Router) {
			r.Get("/", handler.ListNeighborhoods)
			r.Post("/", handler.CreateNeighborhood)
			r.Get("/near", handler.NeighborhoodsNear)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handler.GetNeighborhood)
				r.Delete("/", handler.CloseNeighborhood)
				r.Put("/perimeter", handler.SetPerimeter)
				r.Post("/point-filter", handler.TogglePointFilter)
				r.Post("/diagonal-filter", handler.CycleDiagonalFilter)
				r.Post("/undo", handler.Undo)
				r.Get("/cells", handler.Cells)
				r.Get("/shortcuts.geojson", handler.ShortcutsGeoJSON)
				r.Post("/save", handler.SaveNeighborhood)
				r.Post("/load", handler.LoadNeighborhood)
				r.Delete("/saved", handler.DeleteNeighborhood)
			})
		})
	})
}

// bindAndValidate decodes the request body into data and validates it. it renders the error and returns
// false when the request is invalid.
func (h *NeighborhoodHandler) bindAndValidate(w http.ResponseWriter, r *http.Request, data render.Binder) bool {
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return false
	}
	if err := h.validate.Struct(data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return false
	}
	return true
}

// PerimeterRequest model info
//
//	@Description	closed loop of road ids around a neighborhood, in walking order
type PerimeterRequest struct {
	Roads []int32 `json:"roads" validate:"required,min=3,dive,gte=0"`
	Seed  *int32  `json:"seed,omitempty" validate:"omitempty,gte=0"`
}

func (p *PerimeterRequest) Bind(r *http.Request) error {
	if p.Roads == nil {
		return errors.New("invalid request")
	}
	return nil
}

func (p *PerimeterRequest) perimeter() neighborhood.Perimeter {
	roads := make([]datastructure.RoadID, len(p.Roads))
	for i, road := range p.Roads {
		roads[i] = datastructure.RoadID(road)
	}
	perimeter := neighborhood.NewPerimeter(roads)
	if p.Seed != nil {
		perimeter = perimeter.WithSeed(datastructure.IntersectionID(*p.Seed))
	}
	return perimeter
}

// CreateNeighborhoodRequest model info
//
//	@Description	request body to open a neighborhood editing session
type CreateNeighborhoodRequest struct {
	ID string `json:"id" validate:"required,max=64,excludesall=:/"`
	PerimeterRequest
}

func (c *CreateNeighborhoodRequest) Bind(r *http.Request) error {
	return c.PerimeterRequest.Bind(r)
}

// Coord model info
//
//	@Description	model untuk koordinat
type Coord struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// PointFilterRequest model info
//
//	@Description	toggles a point filter at a clicked location. without road the location is snapped to the nearest filterable road
type PointFilterRequest struct {
	Road *int32 `json:"road,omitempty" validate:"omitempty,gte=0"`
	Coord
}

func (p *PointFilterRequest) Bind(r *http.Request) error {
	return nil
}

// DiagonalFilterRequest model info
//
//	@Description	advances the diagonal filter of an intersection to its next state
type DiagonalFilterRequest struct {
	Intersection *int32 `json:"intersection" validate:"required,gte=0"`
}

func (d *DiagonalFilterRequest) Bind(r *http.Request) error {
	if d.Intersection == nil {
		return errors.New("invalid request")
	}
	return nil
}

// RoadResponse model info
//
//	@Description	an interior road with its shortcut count
type RoadResponse struct {
	ID          int32    `json:"id"`
	Name        string   `json:"name,omitempty"`
	Polyline    string   `json:"polyline"`
	OSMURL      string   `json:"osm_url,omitempty"`
	Shortcuts   int      `json:"shortcuts"`
	PointFilter *float64 `json:"point_filter,omitempty"`
}

// DiagonalFilterResponse model info
//
//	@Description	the two road groups of a diagonal filter
type DiagonalFilterResponse struct {
	Index  int     `json:"index"`
	Group1 []int32 `json:"group1"`
	Group2 []int32 `json:"group2"`
}

// IntersectionResponse model info
//
//	@Description	an interior or border intersection
type IntersectionResponse struct {
	ID             int32                   `json:"id"`
	Coord          Coord                   `json:"coordinate"`
	OSMURL         string                  `json:"osm_url,omitempty"`
	Border         bool                    `json:"border"`
	Shortcuts      int                     `json:"shortcuts"`
	DiagonalFilter *DiagonalFilterResponse `json:"diagonal_filter,omitempty"`
}

// NeighborhoodResponse model info
//
//	@Description	interior, filters and shortcut counts of a neighborhood
type NeighborhoodResponse struct {
	ID            string                 `json:"id"`
	Perimeter     []int32                `json:"perimeter"`
	Boundary      string                 `json:"boundary"`
	Roads         []RoadResponse         `json:"roads"`
	Intersections []IntersectionResponse `json:"intersections"`
	FilterCount   int                    `json:"filter_count"`
	MaxShortcuts  int                    `json:"max_shortcuts"`
	ShortcutPaths int                    `json:"shortcut_paths"`
	UndoAvailable bool                   `json:"undo_available"`
	Version       int                    `json:"version"`
}

func roadIDs(roads []datastructure.RoadID) []int32 {
	ids := make([]int32, len(roads))
	for i, r := range roads {
		ids[i] = int32(r)
	}
	return ids
}

func RenderNeighborhoodResponse(id string, net *network.RoadNetwork, v session.View) *NeighborhoodResponse {
	resp := &NeighborhoodResponse{
		ID:            id,
		Perimeter:     roadIDs(v.Interior.Perimeter.Roads),
		Boundary:      datastructure.CreatePolyline(v.Interior.Boundary.Ring()),
		Roads:         make([]RoadResponse, 0, len(v.Interior.Roads)),
		Intersections: make([]IntersectionResponse, 0, len(v.Interior.Intersections)+len(v.Interior.Borders)),
		FilterCount:   v.Filters.Len(),
		MaxShortcuts:  v.Result.MaxRoadCount(),
		ShortcutPaths: len(v.Result.Paths),
		UndoAvailable: v.UndoAvailable,
		Version:       v.Result.Version,
	}

	for _, r := range v.Interior.Roads {
		road := net.GetRoad(r)
		rr := RoadResponse{
			ID:        int32(r),
			Name:      road.Name,
			Polyline:  datastructure.CreatePolyline(road.Center),
			OSMURL:    net.RoadOSMURL(r),
			Shortcuts: v.Result.RoadCount(r),
		}
		if dist, ok := v.Filters.Roads[r]; ok {
			rr.PointFilter = &dist
		}
		resp.Roads = append(resp.Roads, rr)
	}

	addIntersection := func(i datastructure.IntersectionID, border bool) {
		in := net.GetIntersection(i)
		ir := IntersectionResponse{
			ID:        int32(i),
			Coord:     Coord{Lat: in.Point.Lat, Lon: in.Point.Lon},
			OSMURL:    net.IntersectionOSMURL(i),
			Border:    border,
			Shortcuts: v.Result.IntersectionCount(i),
		}
		if df, ok := v.Filters.Intersections[i]; ok {
			ir.DiagonalFilter = &DiagonalFilterResponse{
				Index:  df.Index,
				Group1: roadIDs(df.Group1),
				Group2: roadIDs(df.Group2),
			}
		}
		resp.Intersections = append(resp.Intersections, ir)
	}
	for _, i := range v.Interior.Intersections {
		addIntersection(i, v.Interior.IsBorder(i))
	}
	for _, i := range v.Interior.Borders {
		// interior borders were already added above
		if !v.Interior.HasIntersection(i) {
			addIntersection(i, true)
		}
	}
	return resp
}

// EditResponse model info
//
//	@Description	result of a filter edit
type EditResponse struct {
	Changed      bool                  `json:"changed"`
	Road         *int32                `json:"road,omitempty"`
	Neighborhood *NeighborhoodResponse `json:"neighborhood"`
}

// CellResponse model info
//
//	@Description	a strongly connected driving area of the neighborhood
type CellResponse struct {
	ID        int     `json:"id"`
	Roads     []int32 `json:"roads"`
	Borders   []int32 `json:"borders"`
	Reachable bool    `json:"reachable"`
	Next      []int   `json:"next"`
}

func RenderCellsResponse(conn *connectivity.Connectivity) []CellResponse {
	cells := make([]CellResponse, 0, len(conn.Cells))
	for _, c := range conn.Cells {
		borders := make([]int32, len(c.Borders))
		for i, b := range c.Borders {
			borders[i] = int32(b)
		}
		next := conn.Condensation[c.ID]
		if next == nil {
			next = []int{}
		}
		cells = append(cells, CellResponse{
			ID:        c.ID,
			Roads:     roadIDs(c.Roads),
			Borders:   borders,
			Reachable: c.Reachable(),
			Next:      next,
		})
	}
	return cells
}

func (h *NeighborhoodHandler) renderView(w http.ResponseWriter, r *http.Request, id string, status int, v session.View) {
	render.Status(r, status)
	render.JSON(w, r, RenderNeighborhoodResponse(id, h.svc.Network(), v))
}

// CreateNeighborhood
//
//	@Summary		open a neighborhood editing session from a perimeter
//	@Description	validates the perimeter, derives the interior and counts the shortcuts through it
//	@Tags			neighborhoods
//	@Param			body	body	CreateNeighborhoodRequest	true	"perimeter of the neighborhood"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/neighborhoods [post]
//	@Success		201	{object}	NeighborhoodResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		409	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NeighborhoodHandler) CreateNeighborhood(w http.ResponseWriter, r *http.Request) {
	data := &CreateNeighborhoodRequest{}
	if !h.bindAndValidate(w, r, data) {
		return
	}

	v, err := h.svc.CreateNeighborhood(r.Context(), data.ID, data.perimeter())
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	h.renderView(w, r, data.ID, http.StatusCreated, v)
}

// ListNeighborhoods
//
//	@Summary	ids of the open neighborhood sessions
//	@Tags		neighborhoods
//	@Produce	application/json
//	@Router		/neighborhoods [get]
//	@Success	200	{array}	string
func (h *NeighborhoodHandler) ListNeighborhoods(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.svc.ListNeighborhoods(r.Context()))
}

// GetNeighborhood
//
//	@Summary	interior, filters and shortcut counts of a neighborhood
//	@Tags		neighborhoods
//	@Param		id	path	string	true	"neighborhood id"
//	@Produce	application/json
//	@Router		/neighborhoods/{id} [get]
//	@Success	200	{object}	NeighborhoodResponse
//	@Failure	404	{object}	ErrResponse
func (h *NeighborhoodHandler) GetNeighborhood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.svc.GetNeighborhood(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	h.renderView(w, r, id, http.StatusOK, v)
}

// CloseNeighborhood
//
//	@Summary	close an editing session without saving
//	@Tags		neighborhoods
//	@Param		id	path	string	true	"neighborhood id"
//	@Router		/neighborhoods/{id} [delete]
//	@Success	204
//	@Failure	404	{object}	ErrResponse
func (h *NeighborhoodHandler) CloseNeighborhood(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.CloseNeighborhood(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	render.NoContent(w, r)
}

// SetPerimeter
//
//	@Summary		move the boundary of a neighborhood
//	@Description	filters are kept, the interior and shortcuts are recomputed
//	@Tags			neighborhoods
//	@Param			id		path	string				true	"neighborhood id"
//	@Param			body	body	PerimeterRequest	true	"new perimeter"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/neighborhoods/{id}/perimeter [put]
//	@Success		200	{object}	NeighborhoodResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NeighborhoodHandler) SetPerimeter(w http.ResponseWriter, r *http.Request) {
	data := &PerimeterRequest{}
	if !h.bindAndValidate(w, r, data) {
		return
	}

	id := chi.URLParam(r, "id")
	v, err := h.svc.SetPerimeter(r.Context(), id, data.perimeter())
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	h.renderView(w, r, id, http.StatusOK, v)
}

// TogglePointFilter
//
//	@Summary	place or remove a point filter
//	@Tags		filters
//	@Param		id		path	string				true	"neighborhood id"
//	@Param		body	body	PointFilterRequest	true	"clicked location"
//	@Accept		application/json
//	@Produce	application/json
//	@Router		/neighborhoods/{id}/point-filter [post]
//	@Success	200	{object}	EditResponse
//	@Failure	400	{object}	ErrResponse
//	@Failure	404	{object}	ErrResponse
func (h *NeighborhoodHandler) TogglePointFilter(w http.ResponseWriter, r *http.Request) {
	data := &PointFilterRequest{}
	if !h.bindAndValidate(w, r, data) {
		return
	}

	var road *datastructure.RoadID
	if data.Road != nil {
		rid := datastructure.RoadID(*data.Road)
		road = &rid
	}

	id := chi.URLParam(r, "id")
	edited, changed, err := h.svc.TogglePointFilter(r.Context(), id, road, datastructure.NewCoordinate(data.Lat, data.Lon))
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	if changed {
		h.m.countEdit("point")
	}
	editedRoad := int32(edited)
	h.renderEdit(w, r, id, changed, &editedRoad)
}

// CycleDiagonalFilter
//
//	@Summary	advance the diagonal filter of an intersection
//	@Tags		filters
//	@Param		id		path	string					true	"neighborhood id"
//	@Param		body	body	DiagonalFilterRequest	true	"intersection"
//	@Accept		application/json
//	@Produce	application/json
//	@Router		/neighborhoods/{id}/diagonal-filter [post]
//	@Success	200	{object}	EditResponse
//	@Failure	400	{object}	ErrResponse
//	@Failure	404	{object}	ErrResponse
func (h *NeighborhoodHandler) CycleDiagonalFilter(w http.ResponseWriter, r *http.Request) {
	data := &DiagonalFilterRequest{}
	if !h.bindAndValidate(w, r, data) {
		return
	}

	id := chi.URLParam(r, "id")
	changed, err := h.svc.CycleDiagonalFilter(r.Context(), id, datastructure.IntersectionID(*data.Intersection))
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	if changed {
		h.m.countEdit("diagonal")
	}
	h.renderEdit(w, r, id, changed, nil)
}

func (h *NeighborhoodHandler) renderEdit(w http.ResponseWriter, r *http.Request, id string, changed bool, road *int32) {
	v, err := h.svc.GetNeighborhood(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &EditResponse{
		Changed:      changed,
		Road:         road,
		Neighborhood: RenderNeighborhoodResponse(id, h.svc.Network(), v),
	})
}

// Undo
//
//	@Summary	restore the filters before the last edit
//	@Tags		filters
//	@Param		id	path	string	true	"neighborhood id"
//	@Produce	application/json
//	@Router		/neighborhoods/{id}/undo [post]
//	@Success	200	{object}	NeighborhoodResponse
//	@Failure	404	{object}	ErrResponse
//	@Failure	409	{object}	ErrResponse
func (h *NeighborhoodHandler) Undo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Undo(r.Context(), id); err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	h.m.countEdit("undo")
	h.GetNeighborhood(w, r)
}

// Cells
//
//	@Summary	strongly connected driving areas of the neighborhood
//	@Tags		neighborhoods
//	@Param		id	path	string	true	"neighborhood id"
//	@Produce	application/json
//	@Router		/neighborhoods/{id}/cells [get]
//	@Success	200	{array}		CellResponse
//	@Failure	404	{object}	ErrResponse
func (h *NeighborhoodHandler) Cells(w http.ResponseWriter, r *http.Request) {
	conn, err := h.svc.Cells(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderCellsResponse(conn))
}

// ShortcutsGeoJSON
//
//	@Summary	perimeter, shortcut counts and filters as a geojson feature collection
//	@Tags		neighborhoods
//	@Param		id	path	string	true	"neighborhood id"
//	@Produce	application/geo+json
//	@Router		/neighborhoods/{id}/shortcuts.geojson [get]
//	@Success	200
//	@Failure	404	{object}	ErrResponse
func (h *NeighborhoodHandler) ShortcutsGeoJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ShortcutsGeoJSON(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// SaveNeighborhood
//
//	@Summary	persist the perimeter and filters of a neighborhood
//	@Tags		storage
//	@Param		id	path	string	true	"neighborhood id"
//	@Router		/neighborhoods/{id}/save [post]
//	@Success	204
//	@Failure	404	{object}	ErrResponse
//	@Failure	500	{object}	ErrResponse
func (h *NeighborhoodHandler) SaveNeighborhood(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SaveNeighborhood(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	render.NoContent(w, r)
}

// LoadNeighborhood
//
//	@Summary	open or reset a session from a saved neighborhood
//	@Tags		storage
//	@Param		id	path	string	true	"neighborhood id"
//	@Produce	application/json
//	@Router		/neighborhoods/{id}/load [post]
//	@Success	200	{object}	NeighborhoodResponse
//	@Failure	404	{object}	ErrResponse
//	@Failure	409	{object}	ErrResponse
func (h *NeighborhoodHandler) LoadNeighborhood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.svc.LoadNeighborhood(r.Context(), id)
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	h.renderView(w, r, id, http.StatusOK, v)
}

// DeleteNeighborhood
//
//	@Summary	delete a saved neighborhood
//	@Tags		storage
//	@Param		id	path	string	true	"neighborhood id"
//	@Router		/neighborhoods/{id}/saved [delete]
//	@Success	204
//	@Failure	404	{object}	ErrResponse
func (h *NeighborhoodHandler) DeleteNeighborhood(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteNeighborhood(r.Context(), chi.URLParam(r, "id")); err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	render.NoContent(w, r)
}

const (
	defaultNearRadiusKm = 2.0
	maxNearRadiusKm     = 20.0
)

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// NeighborhoodsNear
//
//	@Summary	ids of saved neighborhoods around a location
//	@Tags		storage
//	@Param		lat		query	number	true	"latitude"
//	@Param		lon		query	number	true	"longitude"
//	@Param		radius	query	number	false	"search radius in km, at most 20"
//	@Produce	application/json
//	@Router		/neighborhoods/near [get]
//	@Success	200	{array}		string
//	@Failure	400	{object}	ErrResponse
func (h *NeighborhoodHandler) NeighborhoodsNear(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if err := errors.Join(errLat, errLon); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !finite(lat) || !finite(lon) {
		render.Render(w, r, ErrInvalidRequest(errors.New("lat and lon must be finite")))
		return
	}
	radius := defaultNearRadiusKm
	if q.Get("radius") != "" {
		var err error
		radius, err = strconv.ParseFloat(q.Get("radius"), 64)
		if err != nil || !finite(radius) || radius <= 0 || radius > maxNearRadiusKm {
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf("invalid radius %q", q.Get("radius"))))
			return
		}
	}
	if err := h.validate.Struct(Coord{Lat: lat, Lon: lon}); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	ids, err := h.svc.NeighborhoodsNear(r.Context(), lat, lon, radius)
	if err != nil {
		render.Render(w, r, ErrorResponse(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ids)
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrorResponse maps a service error to its http status. internal errors hide their cause.
func ErrorResponse(err error) render.Renderer {
	var serr *server.Error
	msg := "internal server error"
	if errors.As(err, &serr) {
		msg = serr.Message()
	}

	switch server.CodeOf(err) {
	case server.ErrNotFound:
		return &ErrResponse{Err: err, HTTPStatusCode: 404, StatusText: "Resource not found.", ErrorText: msg}
	case server.ErrBadParamInput:
		return &ErrResponse{Err: err, HTTPStatusCode: 400, StatusText: "Invalid request.", ErrorText: err.Error()}
	case server.ErrConflict:
		return &ErrResponse{Err: err, HTTPStatusCode: 409, StatusText: "Conflict.", ErrorText: msg}
	default:
		return ErrInternalServerErrorRend(errors.New("internal server error"))
	}
}

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
