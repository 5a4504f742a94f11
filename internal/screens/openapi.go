package screens

import "github.com/JaimeStill/tour-desk/pkg/openapi"

type spec struct {
	Mount         *openapi.Operation
	Find          *openapi.Operation
	Unmount       *openapi.Operation
	Refresh       *openapi.Operation
	Sort          *openapi.Operation
	Page          *openapi.Operation
	Filter        *openapi.Operation
	OpenForm      *openapi.Operation
	SetFields     *openapi.Operation
	Attach        *openapi.Operation
	Submit        *openapi.Operation
	CancelForm    *openapi.Operation
	ArmDelete     *openapi.Operation
	ConfirmDelete *openapi.Operation
	CancelDelete  *openapi.Operation
}

var screenID = openapi.PathParam("id", "Screen ID")

func action(summary, description string, body *openapi.RequestBody, errs ...int) *openapi.Operation {
	op := &openapi.Operation{
		Summary:     summary,
		Description: description,
		Parameters:  []*openapi.Parameter{screenID},
		RequestBody: body,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Screen state", "ScreenState"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
	for _, code := range errs {
		switch code {
		case 400:
			op.Responses[400] = openapi.ResponseRef("BadRequest")
		case 409:
			op.Responses[409] = openapi.ResponseRef("Conflict")
		case 503:
			op.Responses[503] = openapi.ResponseRef("Unavailable")
		}
	}
	return op
}

var Spec = spec{
	Mount: &openapi.Operation{
		Summary:     "Mount screen",
		Description: "Create a screen for a resource kind and load its first list",
		RequestBody: openapi.RequestBodyJSON("MountScreenRequest", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Screen mounted", "ScreenState"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Find: action("Get screen state", "", nil),
	Unmount: &openapi.Operation{
		Summary:    "Unmount screen",
		Parameters: []*openapi.Parameter{screenID},
		Responses: map[int]*openapi.Response{
			204: {Description: "Screen unmounted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Refresh:       action("Refresh list", "Re-list the screen's collection", nil, 409, 503),
	Sort:          action("Sort rows", "Select a sort field; selecting the current field toggles direction", openapi.RequestBodyJSON("SortRequest", true), 400),
	Page:          action("Select page", "Select a zero-based page; changing page_size returns to page 0", openapi.RequestBodyJSON("PageRequest", true), 400),
	Filter:        action("Apply day filter", "Apply today, yesterday, dayBeforeYesterday, or clear", openapi.RequestBodyJSON("FilterRequest", true), 400),
	OpenForm:      action("Open form", "Open the create form, or the edit form for the given id", openapi.RequestBodyJSON("TargetRequest", false), 400, 409),
	SetFields:     action("Set form fields", "Merge values into the open form", openapi.RequestBodyJSON("FormFields", true), 400, 409),
	Attach:        action("Attach file", "Select the image uploaded on submit", openapi.RequestBodyMultipart("AttachRequest", true), 400, 409),
	Submit:        action("Submit form", "Upload any attached file, then write the document", nil, 400, 409, 503),
	CancelForm:    action("Cancel form", "Discard all edits and close the form", nil, 409),
	ArmDelete:     action("Arm delete", "Select the document to delete", openapi.RequestBodyJSON("TargetRequest", true), 400, 409),
	ConfirmDelete: action("Confirm delete", "Remove the attachment, then the document", nil, 409, 503),
	CancelDelete:  action("Cancel delete", "Disarm the delete confirmation", nil, 409),
}

// Schemas returns the component schemas used by the screen operations.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"MountScreenRequest": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"kind": {Type: "string"}},
			Required:   []string{"kind"},
		},
		"SortRequest": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"field": {Type: "string"}},
			Required:   []string{"field"},
		},
		"FilterRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"filter": {Type: "string", Enum: []string{"today", "yesterday", "dayBeforeYesterday", "clear"}},
			},
		},
		"TargetRequest": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"id": {Type: "string"}},
		},
		"FormFields": {Type: "object"},
		"AttachRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"file": {Type: "string", Format: "binary"},
			},
			Required: []string{"file"},
		},
		"ScreenState": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string"},
				"kind":       {Type: "string"},
				"label":      {Type: "string"},
				"loading":    {Type: "boolean"},
				"busy":       {Type: "string", Enum: []string{"refresh", "open", "submit", "arm", "delete"}},
				"error":      {Type: "string"},
				"view":       {Type: "object"},
				"rows":       {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"form":       {Type: "object"},
				"delete":     {Type: "object"},
				"canRefresh": {Type: "boolean"},
				"canCreate":  {Type: "boolean"},
				"canEdit":    {Type: "boolean"},
				"canSubmit":  {Type: "boolean"},
				"canCancel":  {Type: "boolean"},
				"canConfirm": {Type: "boolean"},
			},
		},
	}
}
