package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/cagmock/cagmock/pkg/dataset"
)

// Document metadata.
const (
	DocumentTitle   = "CAG Management API"
	DocumentVersion = "1.0.0"
)

const schemaPrefix = "#/components/schemas/"

// NewDocument builds the OpenAPI 3 document for the documented routes and
// validates it. serverURL is advertised in the servers list.
func NewDocument(serverURL string) (*openapi3.T, error) {
	schemas := componentSchemas()

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       DocumentTitle,
			Version:     DocumentVersion,
			Description: "Mock API for Carrier-Account-Group (CAG) management system",
			Contact:     &openapi3.Contact{Name: "API Support"},
		},
		Servers: openapi3.Servers{
			{URL: serverURL, Description: "Development server"},
		},
		Tags: openapi3.Tags{
			{Name: TagClient, Description: "Client and contract management endpoints"},
			{Name: TagCAG, Description: "CAG assignment and management endpoints"},
			{Name: TagAdmin, Description: "Mock server state management"},
		},
		Components: &openapi3.Components{Schemas: schemas},
		Paths:      openapi3.NewPaths(),
	}

	for _, rt := range routeTable {
		if rt.Hidden {
			continue
		}
		op, err := buildOperation(rt, schemas)
		if err != nil {
			return nil, err
		}
		doc.AddOperation(rt.Path, rt.Method, op)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// MarshalDocument encodes doc as indented JSON and as YAML.
func MarshalDocument(doc *openapi3.T) (jsonDoc, yamlDoc []byte, err error) {
	jsonDoc, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode OpenAPI JSON: %w", err)
	}
	yamlDoc, err = yaml.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode OpenAPI YAML: %w", err)
	}
	return jsonDoc, yamlDoc, nil
}

func buildOperation(rt Route, schemas openapi3.Schemas) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.OperationID = rt.OperationID
	op.Summary = rt.Summary
	op.Description = rt.Description
	op.Tags = []string{rt.Tag}

	for _, p := range rt.Params {
		param := openapi3.NewQueryParameter(p.Name).
			WithDescription(p.Description).
			WithRequired(p.Required).
			WithSchema(paramSchema(p))
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
	}

	if rt.RequestBody != "" {
		ref, err := schemaRef(schemas, rt.RequestBody)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", rt.Pattern(), err)
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(ref),
		}
	}

	ok, err := schemaRef(schemas, rt.Response)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", rt.Pattern(), err)
	}
	opts := []openapi3.NewResponsesOption{
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Successful response").WithJSONSchemaRef(ok),
		}),
	}
	errRef, _ := schemaRef(schemas, "ErrorResponse")
	for _, status := range rt.Errors {
		opts = append(opts, openapi3.WithStatus(status, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(errorDescription(status)).WithJSONSchemaRef(errRef),
		}))
	}
	op.Responses = openapi3.NewResponses(opts...)
	return op, nil
}

func errorDescription(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgInvalidRequestBody
	case http.StatusRequestEntityTooLarge:
		return "Request body too large"
	}
	return http.StatusText(status)
}

func paramSchema(p Param) *openapi3.Schema {
	var s *openapi3.Schema
	switch p.Type {
	case "integer":
		s = openapi3.NewIntegerSchema()
	default:
		s = openapi3.NewStringSchema()
	}
	if p.Minimum != nil {
		s = s.WithMin(*p.Minimum)
	}
	if len(p.Enum) > 0 {
		values := make([]any, len(p.Enum))
		for i, v := range p.Enum {
			values[i] = v
		}
		s = s.WithEnum(values...)
	}
	return s
}

func schemaRef(schemas openapi3.Schemas, name string) (*openapi3.SchemaRef, error) {
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return openapi3.NewSchemaRef(schemaPrefix+name, s.Value), nil
}

func arrayOf(schemas openapi3.Schemas, name string) *openapi3.Schema {
	arr := openapi3.NewArraySchema()
	arr.Items = openapi3.NewSchemaRef(schemaPrefix+name, schemas[name].Value)
	return arr
}

func nullableDate() *openapi3.Schema {
	return openapi3.NewStringSchema().WithFormat("date").WithNullable()
}

func stringEnum[T ~string](values []T) *openapi3.Schema {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return openapi3.NewStringSchema().WithEnum(out...)
}

func object(required []string, props map[string]*openapi3.Schema) *openapi3.Schema {
	return openapi3.NewObjectSchema().WithProperties(props).WithRequired(required)
}

// componentSchemas builds the record and envelope schemas. Envelopes refer
// to records, so records are added first.
func componentSchemas() openapi3.Schemas {
	str := openapi3.NewStringSchema
	uuid := openapi3.NewUUIDSchema
	date := func() *openapi3.Schema { return openapi3.NewStringSchema().WithFormat("date") }

	schemas := openapi3.Schemas{}
	add := func(name string, s *openapi3.Schema) {
		schemas[name] = openapi3.NewSchemaRef("", s)
	}

	add("Client", object(
		[]string{"clientId", "clientName", "clientReferenceId"},
		map[string]*openapi3.Schema{
			"clientId":          uuid(),
			"clientName":        str(),
			"clientReferenceId": str(),
		}))
	add("Contract", object(
		[]string{"clientId", "contractInternalId", "contractId", "effectiveDate"},
		map[string]*openapi3.Schema{
			"clientId":           uuid(),
			"contractInternalId": uuid(),
			"contractId":         str(),
			"effectiveDate":      date(),
			"terminateDate":      nullableDate(),
		}))
	add("ContractSummary", object(
		[]string{"contractInternalId", "contractId", "effectiveDate"},
		map[string]*openapi3.Schema{
			"contractInternalId": uuid(),
			"contractId":         str(),
			"effectiveDate":      date(),
			"terminateDate":      nullableDate(),
		}))
	add("OperationUnit", object(
		[]string{"contractInternalId", "operationUnitInternalId", "operationUnitId", "operationUnitName"},
		map[string]*openapi3.Schema{
			"contractInternalId":      uuid(),
			"operationUnitInternalId": uuid(),
			"operationUnitId":         str(),
			"operationUnitName":       str(),
		}))
	add("OperationUnitSummary", object(
		[]string{"operationUnitInternalId", "operationUnitId", "operationUnitName"},
		map[string]*openapi3.Schema{
			"operationUnitInternalId": uuid(),
			"operationUnitId":         str(),
			"operationUnitName":       str(),
		}))
	add("AssignedCAG", object(
		[]string{"ouCagId", "operationUnitInternalId", "cagId", "effectiveStartDate", "assigmentStatus"},
		map[string]*openapi3.Schema{
			"ouCagId":                 str(),
			"operationUnitId":         str(),
			"operationUnitInternalId": uuid(),
			"cagId":                   str(),
			"effectiveStartDate":      date(),
			"effectiveEndDate":        nullableDate(),
			"assigmentStatus":         stringEnum([]string{dataset.StatusActive, dataset.StatusSuspended, dataset.StatusInactive}),
			"carrierId":               str(),
			"carrierName":             str(),
			"assignmentLevel":         stringEnum(dataset.AssignmentLevels),
			"accountId":               str(),
			"accountName":             str(),
			"groupId":                 str(),
			"groupName":               str(),
		}))
	add("CAGMapping", object(
		[]string{"cagId"},
		map[string]*openapi3.Schema{
			"cagId":       str(),
			"carrierId":   str(),
			"carrierName": str(),
			"accountId":   str(),
			"accountName": str(),
			"groupId":     str(),
			"groupName":   str(),
		}))
	add("Stats", object(
		[]string{"clients", "contracts", "operationUnits", "assignedCAGs", "cagMappings"},
		map[string]*openapi3.Schema{
			"clients":        openapi3.NewIntegerSchema(),
			"contracts":      openapi3.NewIntegerSchema(),
			"operationUnits": openapi3.NewIntegerSchema(),
			"assignedCAGs":   openapi3.NewIntegerSchema(),
			"cagMappings":    openapi3.NewIntegerSchema(),
		}))

	add("UpdateStatusRequest", object(
		[]string{"ouCagIds", "status"},
		map[string]*openapi3.Schema{
			"ouCagIds": openapi3.NewArraySchema().WithItems(str()),
			"status":   str().WithMinLength(1),
		}))
	add("AssignRequest", object(
		[]string{"operationUnitInternalId", "assignmentType", "cagIds"},
		map[string]*openapi3.Schema{
			"operationUnitInternalId": str().WithMinLength(1),
			"assignmentType":          str().WithPattern(`^(?i:carrier|account|group)$`),
			"cagIds":                  openapi3.NewArraySchema().WithItems(str()),
		}))
	add("MessageResponse", object(
		[]string{"message"},
		map[string]*openapi3.Schema{"message": str()}))
	add("ErrorResponse", object(
		[]string{"error"},
		map[string]*openapi3.Schema{
			"error": str(),
			"field": str(),
			"hint":  str(),
		}))

	add("ClientListResponse", object([]string{"clientList"},
		map[string]*openapi3.Schema{"clientList": arrayOf(schemas, "Client")}))
	add("ContractListResponse", object([]string{"contractList"},
		map[string]*openapi3.Schema{"contractList": arrayOf(schemas, "ContractSummary")}))
	add("OperationUnitListResponse", object([]string{"operationUnitList"},
		map[string]*openapi3.Schema{"operationUnitList": arrayOf(schemas, "OperationUnitSummary")}))
	add("AssignedCAGListResponse", object([]string{"ouCagList", "count"},
		map[string]*openapi3.Schema{
			"ouCagList": arrayOf(schemas, "AssignedCAG"),
			"count":     openapi3.NewIntegerSchema().WithMin(0),
		}))
	add("CAGMappingListResponse", object([]string{"entities"},
		map[string]*openapi3.Schema{"entities": arrayOf(schemas, "CAGMapping")}))
	add("Dataset", object(
		[]string{"clients", "contracts", "operationUnits", "assignedCAGs", "cagMappings"},
		map[string]*openapi3.Schema{
			"clients":        arrayOf(schemas, "Client"),
			"contracts":      arrayOf(schemas, "Contract"),
			"operationUnits": arrayOf(schemas, "OperationUnit"),
			"assignedCAGs":   arrayOf(schemas, "AssignedCAG"),
			"cagMappings":    arrayOf(schemas, "CAGMapping"),
		}))
	resetProps := map[string]*openapi3.Schema{"message": str()}
	reset := object([]string{"message", "stats"}, resetProps)
	reset.Properties["stats"] = openapi3.NewSchemaRef(schemaPrefix+"Stats", schemas["Stats"].Value)
	add("ResetResponse", reset)

	return schemas
}
