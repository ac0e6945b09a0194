// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-notebook/restdata"
)

func (api *restAPI) CheckpointsGet(ctx *context) (interface{}, error) {
	return api.performCheckpoint("GET", ctx)
}

func (api *restAPI) CheckpointsPost(ctx *context, body map[string]interface{}) (interface{}, error) {
	// Checkpoint creation takes no parameters; any body is ignored.
	return api.performCheckpoint("POST", ctx)
}

func (api *restAPI) CheckpointPost(ctx *context, body map[string]interface{}) (interface{}, error) {
	return api.performCheckpoint("POST", ctx)
}

func (api *restAPI) CheckpointDelete(ctx *context) (interface{}, error) {
	return api.performCheckpoint("DELETE", ctx)
}

func (api *restAPI) performCheckpoint(method string, ctx *context) (interface{}, error) {
	in, err := resolveCheckpoint(method, ctx)
	if err != nil {
		return nil, err
	}

	switch in.Op {
	case opListCheckpoints:
		checkpoints, err := api.Store.Checkpoints(in.Name, in.Path)
		if err != nil {
			return nil, err
		}
		response := restdata.CheckpointList{}
		for _, cp := range checkpoints {
			response = append(response, checkpointRepr(cp))
		}
		return response, nil

	case opCreateCheckpoint:
		api.logOp(in, "Creating checkpoint")
		cp, err := api.Store.CreateCheckpoint(in.Name, in.Path)
		if err != nil {
			return nil, err
		}
		location, err := api.checkpointURL(cp.ID, in.Name, in.Path)
		if err != nil {
			return nil, err
		}
		return modelResponse{
			Created:      true,
			Location:     location,
			LastModified: cp.LastModified,
			Body:         checkpointRepr(cp),
		}, nil

	case opRestoreCheckpoint:
		api.logOp(in, "Restoring checkpoint")
		return nil, api.Store.RestoreCheckpoint(in.Checkpoint, in.Name, in.Path)

	case opDeleteCheckpoint:
		return nil, api.Store.DeleteCheckpoint(in.Checkpoint, in.Name, in.Path)
	}
	panic("unreachable checkpoint operation")
}
