package users

import (
	"encoding/json"
	"net/http"

	"cat-registry/internal/middleware"
	"cat-registry/internal/platform/apierror"
	"cat-registry/internal/platform/patch"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, fwd *apierror.Forwarder) {
	h := fwd.Handle

	r.Post("/auth/login", h(loginHandler(svc)))

	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", h(listUsersHandler(svc)))
		ur.Post("/", h(createUserHandler(svc)))

		// Usuario actual (id desde el token)
		ur.Put("/", h(updateCurrentUserHandler(svc)))
		ur.Delete("/", h(deleteCurrentUserHandler(svc)))
		ur.Get("/token", h(checkTokenHandler(svc)))

		ur.Get("/{id}", h(getUserHandler(svc)))
		ur.Put("/{id}", h(updateUserHandler(svc)))
		ur.Delete("/{id}", h(deleteUserHandler(svc)))
	})
}

type createUserRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateUserRequest: role no está; si viene, el decoder lo rechaza.
type updateUserRequest struct {
	UserName patch.Field[string] `json:"user_name" swaggertype:"string"`
	Email    patch.Field[string] `json:"email" swaggertype:"string"`
	Password patch.Field[string] `json:"password" swaggertype:"string"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse nunca incluye password ni role.
type userResponse struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type deletedUser struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// listUsersHandler godoc
// @Summary Listar usuarios
// @Tags users
// @Produce json
// @Success 200 {array} userResponse
// @Router /users [get]
func listUsersHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		items, err := svc.List(r.Context())
		if err != nil {
			return err
		}
		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
		return nil
	}
}

// getUserHandler godoc
// @Summary Obtener un usuario por id
// @Tags users
// @Produce json
// @Param id path string true "ID del usuario"
// @Success 200 {object} userResponse
// @Failure 404 {object} apierror.ErrorResponse "No user found"
// @Router /users/{id} [get]
func getUserHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		u, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
		return nil
	}
}

// createUserHandler godoc
// @Summary Registrar usuario
// @Description El rol siempre es `user`; el password se guarda hasheado.
// @Tags users
// @Accept json
// @Produce json
// @Param payload body createUserRequest true "Datos del usuario"
// @Success 200 {object} messageResponse
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 409 {object} apierror.ErrorResponse
// @Router /users [post]
func createUserHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return apierror.BadRequest("invalid json")
		}
		u, err := svc.Create(r.Context(), CreateInput{
			UserName: req.UserName,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "User added", Data: toUserResponse(u)})
		return nil
	}
}

// updateUserHandler godoc
// @Summary Actualizar un usuario por id (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID del usuario"
// @Param payload body updateUserRequest true "Campos a modificar"
// @Success 200 {object} messageResponse
// @Failure 400 {object} apierror.ErrorResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Failure 404 {object} apierror.ErrorResponse "No user found"
// @Router /users/{id} [put]
func updateUserHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		in, err := decodeUpdate(r)
		if err != nil {
			return err
		}
		u, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in, middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "User updated", Data: toUserResponse(u)})
		return nil
	}
}

// deleteUserHandler godoc
// @Summary Borrar un usuario por id (admin)
// @Description Borra también los gatos del usuario.
// @Tags users
// @Produce json
// @Param id path string true "ID del usuario"
// @Success 200 {object} messageResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Failure 404 {object} apierror.ErrorResponse "No user found"
// @Router /users/{id} [delete]
func deleteUserHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		u, err := svc.Delete(r.Context(), chi.URLParam(r, "id"), middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted", Data: toUserResponse(u)})
		return nil
	}
}

// updateCurrentUserHandler godoc
// @Summary Actualizar el usuario autenticado
// @Tags users
// @Accept json
// @Produce json
// @Param payload body updateUserRequest true "Campos a modificar"
// @Success 200 {object} messageResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Router /users [put]
func updateCurrentUserHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		in, err := decodeUpdate(r)
		if err != nil {
			return err
		}
		u, err := svc.UpdateCurrent(r.Context(), in, middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "User updated", Data: toUserResponse(u)})
		return nil
	}
}

// deleteCurrentUserHandler godoc
// @Summary Borrar el usuario autenticado
// @Tags users
// @Produce json
// @Success 200 {object} messageResponse
// @Failure 401 {object} apierror.ErrorResponse "Not authorized"
// @Failure 404 {object} apierror.ErrorResponse "User not found"
// @Router /users [delete]
func deleteCurrentUserHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		u, err := svc.DeleteCurrent(r.Context(), middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, messageResponse{
			Message: "User deleted",
			Data:    deletedUser{UserName: u.UserName, Email: u.Email},
		})
		return nil
	}
}

// checkTokenHandler godoc
// @Summary Devolver la identidad del token
// @Tags users
// @Produce json
// @Success 200 {object} auth.Claims
// @Failure 403 {object} apierror.ErrorResponse "token not valid"
// @Router /users/token [get]
func checkTokenHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		claims, err := svc.CheckToken(middleware.Caller(r.Context()))
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, claims)
		return nil
	}
}

// loginHandler godoc
// @Summary Login con email y password
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {object} apierror.ErrorResponse "Incorrect username/password"
// @Router /auth/login [post]
func loginHandler(svc *Service) apierror.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return apierror.BadRequest("invalid json")
		}
		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		writeJSON(w, http.StatusOK, loginResponse{
			Message: "Logged in",
			Token:   res.Token,
			User:    toUserResponse(res.User),
		})
		return nil
	}
}

func decodeUpdate(r *http.Request) (UpdateInput, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req updateUserRequest
	if err := dec.Decode(&req); err != nil {
		return UpdateInput{}, apierror.BadRequest("invalid json")
	}
	return UpdateInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	}, nil
}

func toUserResponse(u Public) userResponse {
	return userResponse{ID: u.ID, UserName: u.UserName, Email: u.Email}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
