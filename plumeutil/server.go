/*
Copyright © 2026 the SmokePlume authors.
This file is part of SmokePlume.

SmokePlume is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SmokePlume is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SmokePlume.  If not, see <http://www.gnu.org/licenses/>.
*/

package plumeutil

import (
	"encoding/json"
	"net/http"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/unit"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/plume"
)

// mpsPerMPH converts statute miles per hour to meters per second.
var mpsPerMPH = unit.Div(unit.New(1609.344, unit.Meter), unit.New(3600, unit.Second))

// Server computes plume predictions over HTTP.
type Server struct {
	// Log is the logger for server events. The default is the logrus
	// standard logger.
	Log logrus.FieldLogger

	defaultHours []float64
	segments     int
	router       *mux.Router
}

// NewServer creates a plume prediction server. defaultHours are the
// horizons used when a request omits its own; segments is the arc
// resolution of the wedge polygons.
func NewServer(defaultHours []float64, segments int) *Server {
	if len(defaultHours) == 0 {
		defaultHours = plume.DefaultHours
	}
	s := &Server{
		Log:          logrus.StandardLogger(),
		defaultHours: defaultHours,
		segments:     segments,
	}
	s.router = mux.NewRouter()
	s.router.HandleFunc("/api/plume", s.handleStatic).Methods(http.MethodPost)
	s.router.HandleFunc("/api/plume/dynamic", s.handleDynamic).Methods(http.MethodPost)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// plumeRequest is the JSON body accepted by both endpoints. Exactly one
// of lat/lon or geometry locates the fire.
type plumeRequest struct {
	Lat      *float64        `json:"lat"`
	Lon      *float64        `json:"lon"`
	Geometry json.RawMessage `json:"geometry"`
	AreaM2   *float64        `json:"area_m2"`

	Hours []float64 `json:"hours"`

	WindSpeed    *float64 `json:"wind_speed"`
	WindSpeedMPH *float64 `json:"wind_speed_mph"`
	WindDirFrom  *float64 `json:"wind_dir_from"`

	BurningIndex    float64  `json:"burning_index"`
	OneHrFM         *float64 `json:"one_hr_fm"`
	VIIRSFRP        *float64 `json:"viirs_frp"`
	VIIRSConfidence *float64 `json:"viirs_confidence"`

	EmissionMultiplier  float64 `json:"emission_multiplier"`
	DiffusionMultiplier float64 `json:"diffusion_multiplier"`
	LoftMultiplier      float64 `json:"loft_multiplier"`

	SuppressSmallFires *bool `json:"suppress_small_fires"`

	// Dynamic-mode options, ignored by the static endpoint.
	StepMinutes      float64 `json:"step_minutes"`
	SimulationMode   string  `json:"simulation_mode"`
	OnlyTargetFrames bool    `json:"only_target_frames"`
}

// frameResponse is the wire form of one plume frame.
type frameResponse struct {
	HorizonHours float64           `json:"hours"`
	Geometry     *geojson.Geometry `json:"geojson"`
	Meta         metaResponse      `json:"meta"`
}

type metaResponse struct {
	PlumeLengthM   float64 `json:"plume_length_m"`
	PlumeWidthM    float64 `json:"plume_width_m"`
	EmissionFactor float64 `json:"emission_factor"`
	Loft           float64 `json:"loft"`
	Hours          float64 `json:"hours"`
	WindSpeedMS    float64 `json:"wind_speed_m_s"`
	WindDirFrom    float64 `json:"wind_dir_from"`
	BurningIndex   float64 `json:"burning_index"`
	AreaM2         float64 `json:"area_m2"`
	Degraded       bool    `json:"degraded,omitempty"`
}

type plumeResponse struct {
	Frames     []frameResponse `json:"frames"`
	Source     string          `json:"source"`
	Suppressed bool            `json:"suppressed,omitempty"`
}

// scenario translates a request body into model inputs, applying the
// service-level defaults.
func (s *Server) scenario(req *plumeRequest) (*plume.Scenario, []float64, error) {
	sc := &plume.Scenario{Segments: s.segments}

	switch {
	case len(req.Geometry) > 0:
		g, err := geojson.Decode(req.Geometry)
		if err != nil {
			return nil, nil, plume.NewValidationError("invalid fire geometry: " + err.Error())
		}
		poly, ok := g.(geom.Polygon)
		if !ok {
			return nil, nil, plume.NewValidationError("fire geometry must be a polygon")
		}
		sc.Source.Footprint = poly
	case req.Lat != nil && req.Lon != nil:
		sc.Source.Point = &geom.Point{X: *req.Lon, Y: *req.Lat}
	default:
		return nil, nil, plume.NewValidationError("a fire location (lat/lon or geometry) is required")
	}
	sc.Source.AreaM2 = req.AreaM2

	switch {
	case req.WindSpeed != nil:
		sc.Wind.SpeedMS = *req.WindSpeed
	case req.WindSpeedMPH != nil:
		sc.Wind.SpeedMS = *req.WindSpeedMPH * mpsPerMPH.Value()
	default:
		return nil, nil, plume.NewValidationError("wind_speed or wind_speed_mph is required")
	}
	if req.WindDirFrom == nil {
		return nil, nil, plume.NewValidationError("wind_dir_from is required")
	}
	sc.Wind.DirFromDeg = *req.WindDirFrom

	sc.Intensity = plume.FireIntensity{
		BurningIndex:        req.BurningIndex,
		OneHourFuelMoisture: 30, // conservative default when no fuel data is given
		FRP:                 req.VIIRSFRP,
		Confidence:          req.VIIRSConfidence,
	}
	if req.OneHrFM != nil {
		sc.Intensity.OneHourFuelMoisture = *req.OneHrFM
	}

	sc.Params = plume.EmissionParameters{
		EmissionMultiplier:  req.EmissionMultiplier,
		DiffusionMultiplier: req.DiffusionMultiplier,
		LoftMultiplier:      req.LoftMultiplier,
	}

	sc.SuppressSmallFires = true
	if req.SuppressSmallFires != nil {
		sc.SuppressSmallFires = *req.SuppressSmallFires
	}

	hours := req.Hours
	if len(hours) == 0 {
		hours = s.defaultHours
	}
	return sc, hours, nil
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	sc, hours, err := s.scenario(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := sc.Static(hours)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeResult(w, r, res)
}

func (s *Server) handleDynamic(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	sc, hours, err := s.scenario(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg := plume.DynamicConfig{
		StepMinutes:      req.StepMinutes,
		Mode:             plume.CumulativeUnion,
		OnlyTargetFrames: req.OnlyTargetFrames,
	}
	if cfg.StepMinutes == 0 {
		cfg.StepMinutes = 30
	}
	if req.SimulationMode != "" {
		cfg.Mode, err = plume.ParseSimulationMode(req.SimulationMode)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	res, err := sc.Dynamic(hours, cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeResult(w, r, res)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*plumeRequest, bool) {
	var req plumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, plume.NewValidationError("invalid request body: "+err.Error()))
		return nil, false
	}
	return &req, true
}

func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res *plume.PlumeResult) {
	out := plumeResponse{
		Frames:     make([]frameResponse, 0, len(res.Frames)),
		Source:     res.Source,
		Suppressed: res.Suppressed,
	}
	for _, f := range res.Frames {
		g, err := geojson.ToGeoJSON(f.Polygon)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out.Frames = append(out.Frames, frameResponse{
			HorizonHours: f.HorizonHours,
			Geometry:     g,
			Meta: metaResponse{
				PlumeLengthM:   f.Meta.PlumeLengthM,
				PlumeWidthM:    f.Meta.PlumeWidthM,
				EmissionFactor: f.Meta.EmissionFactor,
				Loft:           f.Meta.Loft,
				Hours:          f.Meta.Hours,
				WindSpeedMS:    f.Meta.WindSpeedMS,
				WindDirFrom:    f.Meta.WindDirFrom,
				BurningIndex:   f.Meta.BurningIndex,
				AreaM2:         f.Meta.AreaM2,
				Degraded:       f.Meta.Degraded,
			},
		})
	}
	s.Log.WithFields(logrus.Fields{
		"url":        r.URL.String(),
		"addr":       r.RemoteAddr,
		"frames":     len(out.Frames),
		"suppressed": out.Suppressed,
	}).Info("plume request")
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.Log.WithError(err).Error("encoding plume response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if plume.IsValidation(err) {
		status = http.StatusBadRequest
	}
	s.Log.WithFields(logrus.Fields{
		"url":    r.URL.String(),
		"addr":   r.RemoteAddr,
		"status": status,
	}).WithError(err).Error("plume request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
