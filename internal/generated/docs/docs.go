// Package docs registers the API document with swag so echo-swagger can
// serve it at /swagger/doc.json.
package docs

import (
	"printdesk/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "printdesk",
	Description:      "Claim, assign and track print orders; live updates over SSE.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  "{}",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	if raw, err := servers.SpecJSON(); err == nil {
		SwaggerInfo.SwaggerTemplate = string(raw)
	}
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
