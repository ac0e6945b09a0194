// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/restdata"
	"github.com/sirupsen/logrus"
)

// The notebook and directory handlers all funnel into resolveNotebook
// and then performNotebook, so that the verb disambiguation rules live
// in exactly one place.

func (api *restAPI) NotebookGet(ctx *context) (interface{}, error) {
	return api.performNotebook("GET", ctx, nil)
}

func (api *restAPI) NotebookPut(ctx *context, body map[string]interface{}) (interface{}, error) {
	return api.performNotebook("PUT", ctx, body)
}

func (api *restAPI) NotebookPost(ctx *context, body map[string]interface{}) (interface{}, error) {
	return api.performNotebook("POST", ctx, body)
}

func (api *restAPI) NotebookPatch(ctx *context, body map[string]interface{}) (interface{}, error) {
	return api.performNotebook("PATCH", ctx, body)
}

func (api *restAPI) NotebookDelete(ctx *context) (interface{}, error) {
	return api.performNotebook("DELETE", ctx, nil)
}

func (api *restAPI) performNotebook(method string, ctx *context, body map[string]interface{}) (interface{}, error) {
	in, err := resolveNotebook(method, ctx, body, api.Store.NotebookExists)
	if err != nil {
		return nil, err
	}

	switch in.Op {
	case opListNotebooks:
		models, err := api.Store.ListNotebooks(in.Path)
		if err != nil {
			return nil, err
		}
		response := restdata.NotebookList{}
		for _, model := range models {
			response = append(response, notebookRepr(model))
		}
		return response, nil

	case opGetNotebook:
		model, err := api.Store.GetNotebook(in.Name, in.Path)
		if err != nil {
			return nil, err
		}
		return modelResponse{
			LastModified: model.LastModified,
			Body:         notebookRepr(model),
		}, nil

	case opRename:
		api.logOp(in, "Renaming notebook")
		model, err := api.Store.UpdateNotebook(in.Model, in.Name, in.Path)
		if err != nil {
			return nil, err
		}
		location, err := api.notebookURL(model.Name, model.Path)
		if err != nil {
			return nil, err
		}
		return modelResponse{
			Location:     location,
			LastModified: model.LastModified,
			Body:         notebookRepr(model),
		}, nil

	case opCopy:
		api.logOp(in, "Copying notebook")
		model, err := api.Store.CopyNotebook(in.CopyFrom, in.Name, in.Path)
		if err != nil {
			return nil, err
		}
		return api.createdNotebook(model)

	case opUpload:
		api.logOp(in, "Uploading notebook")
		upload := notebook.Model{Name: in.Model.Name, Content: in.Model.Content}
		if in.Name != "" {
			// The URL wins over any name in the body
			upload.Name = in.Name
		}
		model, err := api.Store.CreateNotebook(upload, in.Path)
		if err != nil {
			return nil, err
		}
		return api.createdNotebook(model)

	case opCreateEmpty:
		api.logOp(in, "Creating new notebook")
		model, err := api.Store.CreateNotebook(notebook.Model{Name: in.Name}, in.Path)
		if err != nil {
			return nil, err
		}
		return api.createdNotebook(model)

	case opSave:
		api.logOp(in, "Saving notebook")
		model, err := api.Store.SaveNotebook(in.Model, in.Name, in.Path)
		if err != nil {
			return nil, err
		}
		response := modelResponse{
			LastModified: model.LastModified,
			Body:         notebookRepr(model),
		}
		// Only advertise a new location if the save actually
		// moved the notebook.
		if model.Name != in.Name || model.Path != in.Path {
			response.Location, err = api.notebookURL(model.Name, model.Path)
			if err != nil {
				return nil, err
			}
		}
		return response, nil

	case opDeleteNotebook:
		return nil, api.Store.DeleteNotebook(in.Name, in.Path)
	}
	panic("unreachable notebook operation")
}

// createdNotebook builds the 201 response for operations that make a
// new notebook.
func (api *restAPI) createdNotebook(model notebook.Model) (interface{}, error) {
	location, err := api.notebookURL(model.Name, model.Path)
	if err != nil {
		return nil, err
	}
	return modelResponse{
		Created:      true,
		Location:     location,
		LastModified: model.LastModified,
		Body:         notebookRepr(model),
	}, nil
}

func (api *restAPI) logOp(in intent, msg string) {
	fields := logrus.Fields{"path": in.Path}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.CopyFrom != "" {
		fields["copy"] = in.CopyFrom
	}
	api.Log.WithFields(fields).Info(msg)
}
