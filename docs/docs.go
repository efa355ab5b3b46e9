// Package docs registra la descripción OpenAPI servida en /swagger/*.
// Se mantiene a mano junto con las anotaciones @Router de los handlers.
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
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Registrar usuario",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Renovar tokens",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/pets": {
            "get": {
                "tags": ["pets"],
                "summary": "Listar mascotas aprobadas",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["pets"],
                "summary": "Crear listado de mascota",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/pets/register": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Registrar mascota para moderación",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        },
        "/pets/{petID}/reviews": {
            "get": {
                "tags": ["reviews"],
                "summary": "Reviews de una mascota",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pets/{petID}/adoptions": {
            "get": {
                "tags": ["lifecycle"],
                "summary": "Solicitudes de adopción de una mascota",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/adoptions": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Crear solicitud de adopción",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/adoptions/mine": {
            "get": {
                "tags": ["adoptions"],
                "summary": "Mis solicitudes de adopción",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/adoptions/{requestID}/status": {
            "put": {
                "tags": ["lifecycle"],
                "summary": "Decidir solicitud de adopción",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        },
        "/reviews": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Crear review",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/reports": {
            "get": {
                "tags": ["reports"],
                "summary": "Listar reportes",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["lifecycle"],
                "summary": "Crear reporte de mascota perdida o encontrada",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/users/me": {
            "get": {
                "tags": ["users"],
                "summary": "Mi perfil",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/matches/suggestions": {
            "get": {
                "tags": ["matches"],
                "summary": "Sugerencias de mascotas",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/chat/messages": {
            "post": {
                "tags": ["chat"],
                "summary": "Enviar mensaje",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/notifications": {
            "get": {
                "tags": ["notifications"],
                "summary": "Notificaciones del usuario",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["admin"],
                "summary": "Estadísticas del panel admin",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/admin/pets/{petID}/status": {
            "put": {
                "tags": ["admin"],
                "summary": "Aprobar o desaprobar mascota",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/users/{userID}/status": {
            "put": {
                "tags": ["admin"],
                "summary": "Activar o desactivar usuario",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/reports/{reportID}/status": {
            "put": {
                "tags": ["admin"],
                "summary": "Moderar reporte",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/pets/{petID}/reconcile": {
            "post": {
                "tags": ["admin"],
                "summary": "Reconciliar cascada de adopción",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    }
}`

// SwaggerInfo se registra en swag al importar el paquete.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PetRescue API",
	Description:      "Adopción de mascotas: listados, reportes, solicitudes, reviews y notificaciones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
