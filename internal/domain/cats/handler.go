package cats

import (
	"encoding/json"
	"net/http"
	"time"

	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/apierror"
	"cat-registry/internal/platform/patch"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, fwd *apierror.Forwarder) {
	h := fwd.Handle

	r.Route("/cats", func(cr chi.Router) {
		cr.Get("/", h(listCatsHandler(svc)))
		cr.Post("/", h(createCatHandler(svc)))

		// Gatos del caller (id desde el token, nunca por parámetro)
		cr.Get("/user", h(listMyCatsHandler(svc)))
		cr.Get("/area", h(listCatsInAreaHandler(svc)))

		// Admin: cambiar owner / borrar cualquier gato
		cr.Put("/admin/{id}", h(updateCatAdminHandler(svc)))
		cr.Delete("/admin/{id}", h(deleteCatAdminHandler(svc)))

		cr.Get("/{id}", h(getCatHandler(svc)))
		cr.Put("/{id}", h(updateCatHandler(svc)))
		cr.Delete("/{id}", h(deleteCatHandler(svc)))
	})
}

// geoJSON es la forma wire de Point.
type geoJSON struct {
	Type        string    `json:"type" example:"Point"`
	Coordinates []float64 `json:"coordinates" example:"24.9,60.2"`
}

// createCatRequest es el body de POST /cats. El id lo asigna el store.
type createCatRequest struct {
	Name      string   `json:"name"`
	Weight    float64  `json:"weight"`
	Filename  string   `json:"filename"`
	Birthdate string   `json:"birthdate"` // YYYY-MM-DD o RFC3339
	Location  *geoJSON `json:"location"`
	Owner     string   `json:"owner"` // opcional: default = caller
}

// updateCatRequest: null en filename limpia la imagen; null en el resto es 400.
type updateCatRequest struct {
	Name      patch.Field[string]  `json:"name" swaggertype:"string"`
	Weight    patch.Field[float64] `json:"weight" swaggertype:"number"`
	Filename  patch.Field[string]  `json:"filename" swaggertype:"string"`
	Birthdate patch.Field[string]  `json:"birthdate" swaggertype:"string"`
	Location  patch.Field[geoJSON] `json:"location" swaggertype:"object"`
	Owner     patch.Field[string]  `json:"owner" swaggertype:"string"`
}

// catResponse representa un gato devuelto por la API (sin marcador de revisión).
type catResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Weight    float64   `json:"weight"`
	Filename  string    `json:"filename,omitempty"`
	Birthdate time.Time `json:"birthdate"`
	Location  geoJSON   `json:"location"`
	Owner     string    `json:"owner"`
}

type messageResponse struct {
	Message string      `json:"message"`
	Data    catResponse `json:"data"`
}

// listCatsHandler godoc
// @Summary Listar gatos
// @Tags cats
// @Produce json
// @Success 200 {array} catResponse
// @Router /cats [get]
func listCatsHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		items, err := svc.List(r.Context())
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toCatResponses(items))
		return nil
	}
}

// getCatHandler godoc
// @Summary Obtener un gato por id
// @Tags cats
// @Produce json
// @Param id path string true "ID del gato"
// @Success 200 {object} catResponse
// @Failure 404 {object} apierror.ErrorResponse "No cat found"
// @Router /cats/{id} [get]
func getCatHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		c, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toCatResponse(c))
		return nil
	}
}

// createCatHandler godoc
// @Summary Crear gato
// @Description El owner por defecto es el caller; solo un admin puede asignar otro. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags cats
// @Accept json
// @Produce json
// @Param payload body createCatRequest true "Datos del gato"
// @Success 200 {object} messageResponse
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 401 {object} apierror.ErrorResponse
// @Router /cats [post]
func createCatHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req createCatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return apierror.BadRequest("invalid json")
		}

		in := CreateInput{
			Name:     req.Name,
			Weight:   req.Weight,
			Filename: req.Filename,
			Owner:    req.Owner,
		}
		if req.Birthdate != "" {
			bd, err := ParseBirthdate(req.Birthdate)
			if err != nil {
				return apierror.BadRequest(err.Error())
			}
			in.Birthdate = bd
		}
		if req.Location != nil {
			p, err := PointFromGeoJSON(req.Location.Type, req.Location.Coordinates)
			if err != nil {
				return apierror.BadRequest(err.Error())
			}
			in.Location = &p
		}

		c, err := svc.Create(r.Context(), middleware.Caller(r.Context()), in)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cat added", Data: toCatResponse(c)})
		return nil
	}
}

// listMyCatsHandler godoc
// @Summary Listar gatos del usuario autenticado
// @Tags cats
// @Produce json
// @Success 200 {array} catResponse
// @Failure 401 {object} apierror.ErrorResponse
// @Router /cats/user [get]
func listMyCatsHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		items, err := svc.ListByOwner(r.Context(), middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toCatResponses(items))
		return nil
	}
}

// listCatsInAreaHandler godoc
// @Summary Listar gatos dentro de un bounding box
// @Tags cats
// @Produce json
// @Param topRight query string true "lon,lat"
// @Param bottomLeft query string true "lon,lat"
// @Success 200 {array} catResponse
// @Failure 400 {object} apierror.ErrorResponse
// @Router /cats/area [get]
func listCatsInAreaHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		q := r.URL.Query()
		if q.Get("topRight") == "" || q.Get("bottomLeft") == "" {
			return apierror.BadRequest("topRight and bottomLeft are required")
		}
		topRight, err := ParsePoint(q.Get("topRight"))
		if err != nil {
			return apierror.BadRequest("topRight: " + err.Error())
		}
		bottomLeft, err := ParsePoint(q.Get("bottomLeft"))
		if err != nil {
			return apierror.BadRequest("bottomLeft: " + err.Error())
		}

		items, err := svc.ListWithin(r.Context(), topRight, bottomLeft)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toCatResponses(items))
		return nil
	}
}

// updateCatHandler godoc
// @Summary Actualizar gato propio
// @Description Update parcial: solo se tocan los campos presentes. `filename: null` borra la imagen.
// @Tags cats
// @Accept json
// @Produce json
// @Param id path string true "ID del gato"
// @Param payload body updateCatRequest true "Campos a cambiar"
// @Success 200 {object} messageResponse
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Failure 404 {object} apierror.ErrorResponse "Cat not found"
// @Router /cats/{id} [put]
func updateCatHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		in, err := decodeUpdate(r)
		if err != nil {
			return err
		}
		c, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in, middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cat updated", Data: toCatResponse(c)})
		return nil
	}
}

// updateCatAdminHandler godoc
// @Summary Actualizar cualquier gato (admin)
// @Tags cats
// @Accept json
// @Produce json
// @Param id path string true "ID del gato"
// @Param payload body updateCatRequest true "Campos a cambiar"
// @Success 200 {object} messageResponse
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Failure 404 {object} apierror.ErrorResponse "Cat not found"
// @Router /cats/admin/{id} [put]
func updateCatAdminHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		in, err := decodeUpdate(r)
		if err != nil {
			return err
		}
		c, err := svc.UpdateAsAdmin(r.Context(), chi.URLParam(r, "id"), in, middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cat updated successfully", Data: toCatResponse(c)})
		return nil
	}
}

// deleteCatHandler godoc
// @Summary Borrar gato propio
// @Tags cats
// @Produce json
// @Param id path string true "ID del gato"
// @Success 200 {object} messageResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Failure 404 {object} apierror.ErrorResponse "Cat not found"
// @Router /cats/{id} [delete]
func deleteCatHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		c, err := svc.Delete(r.Context(), chi.URLParam(r, "id"), middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cat deleted", Data: toCatResponse(c)})
		return nil
	}
}

// deleteCatAdminHandler godoc
// @Summary Borrar cualquier gato (admin)
// @Tags cats
// @Produce json
// @Param id path string true "ID del gato"
// @Success 200 {object} messageResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Failure 404 {object} apierror.ErrorResponse "Cat not found"
// @Router /cats/admin/{id} [delete]
func deleteCatAdminHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		c, err := svc.DeleteAsAdmin(r.Context(), chi.URLParam(r, "id"), middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cat deleted", Data: toCatResponse(c)})
		return nil
	}
}

func decodeUpdate(r *http.Request) (UpdateInput, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req updateCatRequest
	if err := dec.Decode(&req); err != nil {
		return UpdateInput{}, apierror.BadRequest("invalid json")
	}

	in := UpdateInput{
		Name:     req.Name,
		Weight:   req.Weight,
		Filename: req.Filename,
		Owner:    req.Owner,
	}

	if req.Birthdate.Set {
		in.Birthdate = patch.Null[time.Time]()
		if s, ok := req.Birthdate.Get(); ok {
			bd, err := ParseBirthdate(s)
			if err != nil {
				return UpdateInput{}, apierror.BadRequest(err.Error())
			}
			in.Birthdate = patch.Value(bd)
		}
	}

	if req.Location.Set {
		in.Location = patch.Null[Point]()
		if g, ok := req.Location.Get(); ok {
			p, err := PointFromGeoJSON(g.Type, g.Coordinates)
			if err != nil {
				return UpdateInput{}, apierror.BadRequest(err.Error())
			}
			in.Location = patch.Value(p)
		}
	}

	return in, nil
}

func toCatResponse(c Cat) catResponse {
	return catResponse{
		ID:        c.ID,
		Name:      c.Name,
		Weight:    c.Weight,
		Filename:  c.Filename,
		Birthdate: c.Birthdate,
		Location:  geoJSON{Type: GeoJSONPoint, Coordinates: c.Location.Coordinates()},
		Owner:     c.Owner,
	}
}

func toCatResponses(items []Cat) []catResponse {
	out := make([]catResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCatResponse(c))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
