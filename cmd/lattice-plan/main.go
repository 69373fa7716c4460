// Package main plans a path through a lattice described by a json request file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/latticeplan/curve"
	"go.viam.com/latticeplan/logging"
	"go.viam.com/latticeplan/motionplan/lattice"
	"go.viam.com/latticeplan/spatialmath"
	"go.viam.com/latticeplan/utils"
)

// planFile is the request format read from disk.
type planFile struct {
	// Reference is the clothoid joining these two poses.
	Reference struct {
		Start spatialmath.Pose2D `json:"start"`
		End   spatialmath.Pose2D `json:"end"`
	} `json:"reference"`
	Start     *spatialmath.Pose2D    `json:"start,omitempty"`
	Obstacles [][]r2.Point           `json:"obstacles"`
	Options   map[string]interface{} `json:"options"`
}

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	ctx := context.Background()
	plotFile := flag.String("plot", "", "write a png of the lattice and chosen path to this file")
	printJSON := flag.Bool("json", false, "print the result as json")
	verbose := flag.Bool("v", false, "verbose")

	flag.Parse()
	if len(flag.Args()) == 0 {
		return fmt.Errorf("need a json file")
	}

	logger := logging.NewLogger("lattice-plan")
	if *verbose {
		logger = logging.NewDebugLogger("lattice-plan")
	}

	logger.Infof("reading plan from %s", flag.Arg(0))
	content, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}
	req, ref, err := parseRequest(content, logger)
	if err != nil {
		return err
	}

	res, err := lattice.NewPlanner(logger).Plan(ctx, req)
	if err != nil {
		return err
	}

	feasible := res.Graph.FeasibleEdges()
	logger.Infof("total segments: %d, feasible: %d, infeasible: %d",
		len(res.Graph.Edges()), feasible, len(res.Graph.Edges())-feasible)
	if res.Outcome == lattice.NoFeasiblePath {
		logger.Warn("no complete, feasible path could be found")
	} else {
		names := lo.Map(res.Nodes, func(id lattice.NodeID, _ int) string { return id.String() })
		logger.Infof("optimal path: %s (cost %v)", strings.Join(names, " -> "), res.Cost)
	}

	if *printJSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}

	if *plotFile != "" {
		if err := renderPlan(res, ref, req.Obstacles, *plotFile); err != nil {
			return errors.Wrap(err, "rendering plan")
		}
		logger.Infof("wrote %s", *plotFile)
	}
	return nil
}

// parseRequest decodes a request file. The planning timeout comes from the environment unless the options
// set one.
func parseRequest(content []byte, logger logging.Logger) (*lattice.PlanningRequest, curve.Curve, error) {
	var file planFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, nil, err
	}
	ref, err := curve.G1Hermite(file.Reference.Start, file.Reference.End)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building reference")
	}
	opt, err := lattice.NewPlannerOptionsFromExtra(file.Options)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := file.Options["timeout"]; !ok {
		opt.Timeout = utils.GetPlanTimeout(logger).Seconds()
	}
	return &lattice.PlanningRequest{
		Reference: ref,
		Start:     file.Start,
		Obstacles: file.Obstacles,
		Options:   opt,
	}, ref, nil
}
