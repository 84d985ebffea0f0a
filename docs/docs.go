// Package docs registers the OpenAPI document served by the Swagger UI.
// Regenerate with `swag init -g cmd/snnd/docs.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/menu": {
            "get": {
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Current menu state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.MenuView"}}}
            }
        },
        "/menu/select": {
            "post": {
                "description": "Applies one menu event. Selecting \"run\" commits the ballot and starts reconfiguring the backend.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Toggle a menu option",
                "parameters": [{"description": "option to select", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.SelectRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SelectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/menu/run": {
            "post": {
                "description": "Shorthand for selecting \"run\". With wait=true the response is sent once the backend finished applying.",
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Commit the current selection",
                "parameters": [{"type": "boolean", "description": "block until applied", "name": "wait", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SelectResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/config": {
            "get": {
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Committed configuration",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ConfigResponse"}}}
            }
        },
        "/progress": {
            "get": {
                "description": "Reports loading while a change awaits the backend. The first call after the backend applied a change clears the flag and reports dismissed=true.",
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Loading indicator state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ProgressResponse"}}}
            }
        },
        "/classifier": {
            "get": {
                "produces": ["application/json"],
                "tags": ["classifier"],
                "summary": "Latest classifier label",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ClassifierResponse"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["classifier"],
                "summary": "Report a classifier output index",
                "parameters": [{"description": "classifier output", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ClassifierIndexRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ClassifierResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Model assets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Recent reconfiguration events",
                "parameters": [{"type": "integer", "description": "maximum number of events (default 50)", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.EventsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Daemon status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}}
            }
        }
    },
    "definitions": {
        "types.SelectRequest": {
            "type": "object",
            "properties": {"option": {"type": "string", "example": "resnet18"}}
        },
        "types.MenuView": {
            "type": "object",
            "properties": {
                "checked": {"type": "array", "items": {"type": "string"}},
                "classifier_choices_visible": {"type": "boolean"},
                "style_choices_visible": {"type": "boolean"},
                "shader_choice_visible": {"type": "boolean"},
                "fragment_shader_enabled": {"type": "boolean"},
                "concrete_model_selected": {"type": "boolean"},
                "run_enabled": {"type": "boolean"}
            }
        },
        "types.SelectResponse": {
            "type": "object",
            "properties": {
                "handled": {"type": "boolean"},
                "ran": {"type": "boolean"},
                "keep_open": {"type": "boolean"},
                "menu": {"$ref": "#/definitions/types.MenuView"}
            }
        },
        "types.ConfigResponse": {
            "type": "object",
            "properties": {
                "denoiser": {"type": "string", "example": "none"},
                "denoiser_shader": {"type": "string", "example": "fragment_shader"},
                "classifier": {"type": "string", "example": "resnet18"},
                "classifier_shader": {"type": "string", "example": "compute_shader"},
                "detection": {"type": "string", "example": "none"},
                "detection_shader": {"type": "string", "example": "fragment_shader"},
                "style_transfer": {"type": "string", "example": "none"},
                "precision": {"type": "string", "example": "fp16"},
                "classifier_index": {"type": "integer", "example": 0},
                "change_state": {"type": "string", "example": "pending_apply"},
                "revision": {"type": "integer", "example": 3}
            }
        },
        "types.ProgressResponse": {
            "type": "object",
            "properties": {
                "loading": {"type": "boolean"},
                "state": {"type": "string", "example": "applied"},
                "dismissed": {"type": "boolean"}
            }
        },
        "types.ClassifierResponse": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "cat"},
                "index": {"type": "integer", "example": 4}
            }
        },
        "types.ClassifierIndexRequest": {
            "type": "object",
            "properties": {"index": {"type": "integer", "example": 4}}
        },
        "types.Model": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "resnet18"},
                "name": {"type": "string", "example": "ResNet18 (CIFAR-10)"},
                "category": {"type": "string", "example": "classifier"},
                "asset": {"type": "string", "example": "resnet18_cifar10.json"},
                "path": {"type": "string"},
                "size_bytes": {"type": "integer"},
                "available": {"type": "boolean", "example": true}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {"models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}}}
        },
        "types.Event": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 12},
                "op_id": {"type": "string"},
                "name": {"type": "string", "example": "apply_done"},
                "revision": {"type": "integer", "example": 3},
                "fields": {"type": "object", "additionalProperties": true},
                "at_unix_ms": {"type": "integer", "example": 1700000000000}
            }
        },
        "types.EventsResponse": {
            "type": "object",
            "properties": {"events": {"type": "array", "items": {"$ref": "#/definitions/types.Event"}}}
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "change_state": {"type": "string", "example": "unchanged"},
                "active_category": {"type": "string", "example": "classifier"},
                "revision": {"type": "integer", "example": 3},
                "backend": {"type": "string", "example": "simulated"},
                "applying": {"type": "boolean"},
                "last_op_id": {"type": "string"},
                "last_error": {"type": "string"},
                "applies_total": {"type": "integer", "example": 4},
                "failures_total": {"type": "integer", "example": 0},
                "uptime_seconds": {"type": "integer", "example": 3600},
                "server_time_unix": {"type": "integer", "example": 1700000000}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "snnd API",
	Description:      "HTTP API for selecting and applying on-device neural network models.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
