// Package docs registra el documento OpenAPI servido en /swagger/*.
// Se regenera con `swag init -g cmd/api/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login con email y password",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/users.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.loginResponse"}},
                    "401": {"description": "Incorrect username/password", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/cats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Listar gatos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}}
                }
            },
            "post": {
                "description": "El owner por defecto es el caller; solo un admin puede asignar otro.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Crear gato",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/cats.createCatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/cats/admin/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Actualizar cualquier gato (admin)",
                "parameters": [
                    {"type": "string", "description": "ID del gato", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/cats.updateCatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "404": {"description": "Cat not found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Borrar cualquier gato (admin)",
                "parameters": [{"type": "string", "description": "ID del gato", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.messageResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "404": {"description": "Cat not found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/cats/area": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Listar gatos dentro de un bounding box",
                "parameters": [
                    {"type": "string", "description": "lon,lat", "name": "topRight", "in": "query", "required": true},
                    {"type": "string", "description": "lon,lat", "name": "bottomLeft", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/cats/user": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Listar gatos del usuario autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/cats/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Obtener un gato por id",
                "parameters": [{"type": "string", "description": "ID del gato", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.catResponse"}},
                    "404": {"description": "No cat found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Update parcial: solo se tocan los campos presentes. filename: null borra la imagen.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Actualizar gato propio",
                "parameters": [
                    {"type": "string", "description": "ID del gato", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/cats.updateCatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "404": {"description": "Cat not found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Borrar gato propio",
                "parameters": [{"type": "string", "description": "ID del gato", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.messageResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "404": {"description": "Cat not found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Listar usuarios",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/users.userResponse"}}}
                }
            },
            "post": {
                "description": "El rol siempre es user; el password se guarda hasheado.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Registrar usuario",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/users.createUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Actualizar el usuario autenticado",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/users.updateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.messageResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Borrar el usuario autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.messageResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/users/token": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Devolver la identidad del token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.Claims"}},
                    "403": {"description": "token not valid", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Obtener un usuario por id",
                "parameters": [{"type": "string", "description": "ID del usuario", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.userResponse"}},
                    "404": {"description": "No user found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Actualizar un usuario por id (admin)",
                "parameters": [
                    {"type": "string", "description": "ID del usuario", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/users.updateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "404": {"description": "No user found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Borra también los gatos del usuario.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Borrar un usuario por id (admin)",
                "parameters": [{"type": "string", "description": "ID del usuario", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.messageResponse"}},
                    "401": {"description": "Not authorized", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}},
                    "404": {"description": "No user found", "schema": {"$ref": "#/definitions/apierror.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apierror.ErrorResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "status": {"type": "integer"}}
        },
        "auth.Claims": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "cats.geoJSON": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "example": "Point"},
                "coordinates": {"type": "array", "items": {"type": "number"}, "example": [24.9, 60.2]}
            }
        },
        "cats.createCatRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "weight": {"type": "number"},
                "filename": {"type": "string"},
                "birthdate": {"type": "string"},
                "location": {"$ref": "#/definitions/cats.geoJSON"},
                "owner": {"type": "string"}
            }
        },
        "cats.updateCatRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "weight": {"type": "number"},
                "filename": {"type": "string"},
                "birthdate": {"type": "string"},
                "location": {"type": "object"},
                "owner": {"type": "string"}
            }
        },
        "cats.catResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "weight": {"type": "number"},
                "filename": {"type": "string"},
                "birthdate": {"type": "string"},
                "location": {"$ref": "#/definitions/cats.geoJSON"},
                "owner": {"type": "string"}
            }
        },
        "cats.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "data": {"$ref": "#/definitions/cats.catResponse"}}
        },
        "users.createUserRequest": {
            "type": "object",
            "properties": {"user_name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "users.updateUserRequest": {
            "type": "object",
            "properties": {"user_name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "users.loginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "users.userResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "user_name": {"type": "string"}, "email": {"type": "string"}}
        },
        "users.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "data": {}}
        },
        "users.loginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/users.userResponse"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cat Registry API",
	Description:      "Registro de gatos y usuarios con consultas por bounding box.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
