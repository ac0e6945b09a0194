// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package nbctl provides a command-line client for the notebook
// storage service.  It can list, fetch, upload, copy, and delete
// notebooks, and manage their checkpoints, against any of the
// supported backends; the default talks to a local notebookd.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
	"github.com/urfave/cli"

	"github.com/diffeo/go-notebook/backend"
	"github.com/diffeo/go-notebook/notebook"
)

var store notebook.Store
var path string

func fatalIfErr(err error, what string) {
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal(what)
	}
}

// readContent loads a notebook content dictionary from a JSON file,
// "-" or "" meaning stdin.
func readContent(filename string) (map[string]interface{}, error) {
	var (
		data []byte
		err  error
	)
	if filename == "" || filename == "-" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(filename)
	}
	if err != nil {
		return nil, err
	}
	content := map[string]interface{}{}
	decoder := codec.NewDecoderBytes(data, &codec.JsonHandle{})
	err = decoder.Decode(&content)
	return content, err
}

var list = cli.Command{
	Name:  "ls",
	Usage: "list notebooks in the directory",
	Action: func(c *cli.Context) {
		models, err := store.ListNotebooks(path)
		fatalIfErr(err, "Could not list notebooks")
		for _, model := range models {
			fmt.Printf("%v\t%v\n",
				model.LastModified.Format("2006-01-02 15:04:05"),
				model.Name)
		}
	},
}

var show = cli.Command{
	Name:      "show",
	Usage:     "print a notebook's content as JSON",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) {
		model, err := store.GetNotebook(c.Args().First(), path)
		fatalIfErr(err, "Could not fetch notebook")
		var out []byte
		encoder := codec.NewEncoderBytes(&out, &codec.JsonHandle{})
		err = encoder.Encode(model.Content)
		fatalIfErr(err, "Could not encode notebook content")
		fmt.Println(string(out))
	},
}

var put = cli.Command{
	Name:      "put",
	Usage:     "upload a notebook from a JSON file (or stdin)",
	ArgsUsage: "NAME [FILE]",
	Action: func(c *cli.Context) {
		content, err := readContent(c.Args().Get(1))
		fatalIfErr(err, "Could not read notebook content")
		model, err := store.CreateNotebook(notebook.Model{
			Name:    c.Args().First(),
			Content: content,
		}, path)
		fatalIfErr(err, "Could not upload notebook")
		fmt.Println(notebook.JoinPath(model.Path, model.Name))
	},
}

var remove = cli.Command{
	Name:      "rm",
	Usage:     "delete a notebook",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) {
		err := store.DeleteNotebook(c.Args().First(), path)
		fatalIfErr(err, "Could not delete notebook")
	},
}

var duplicate = cli.Command{
	Name:      "cp",
	Usage:     "copy a notebook within the directory",
	ArgsUsage: "FROM [TO]",
	Action: func(c *cli.Context) {
		model, err := store.CopyNotebook(
			c.Args().First(), c.Args().Get(1), path)
		fatalIfErr(err, "Could not copy notebook")
		fmt.Println(notebook.JoinPath(model.Path, model.Name))
	},
}

var checkpoints = cli.Command{
	Name:      "checkpoints",
	Usage:     "list a notebook's checkpoints",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) {
		cps, err := store.Checkpoints(c.Args().First(), path)
		fatalIfErr(err, "Could not list checkpoints")
		for _, cp := range cps {
			fmt.Printf("%v\t%v\n",
				cp.LastModified.Format("2006-01-02 15:04:05"),
				cp.ID)
		}
	},
}

var checkpoint = cli.Command{
	Name:      "checkpoint",
	Usage:     "create a checkpoint of a notebook",
	ArgsUsage: "NAME",
	Action: func(c *cli.Context) {
		cp, err := store.CreateCheckpoint(c.Args().First(), path)
		fatalIfErr(err, "Could not create checkpoint")
		fmt.Println(cp.ID)
	},
}

var restore = cli.Command{
	Name:      "restore",
	Usage:     "restore a notebook to a checkpoint",
	ArgsUsage: "NAME CHECKPOINT",
	Action: func(c *cli.Context) {
		err := store.RestoreCheckpoint(
			c.Args().Get(1), c.Args().First(), path)
		fatalIfErr(err, "Could not restore checkpoint")
	},
}

func main() {
	storage := backend.Backend{
		Implementation: "http",
		Address:        "//localhost:5980/",
	}
	app := cli.NewApp()
	app.Usage = "inspect and manage stored notebooks"
	app.Flags = []cli.Flag{
		cli.GenericFlag{
			Name:  "backend",
			Value: &storage,
			Usage: "impl[:address] of the notebook backend",
		},
		cli.StringFlag{
			Name:  "path",
			Usage: "notebook directory to work in",
		},
	}
	app.Commands = []cli.Command{
		list,
		show,
		put,
		remove,
		duplicate,
		checkpoints,
		checkpoint,
		restore,
	}
	app.Before = func(c *cli.Context) (err error) {
		store, err = storage.Store()
		if err != nil {
			return
		}
		path = c.String("path")
		return
	}
	app.RunAndExitOnError()
}
