package route

import (
	"context"
	"fmt"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/teapot/db"
	"github.com/evergreen-ci/teapot/rest/data"
	restModel "github.com/evergreen-ci/teapot/rest/model"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const teapotIDVar = "teapot_id"

////////////////////////////////////////////////////////////////////////
//
// POST /teapot

type teapotCreateHandler struct {
	teapot restModel.APITeapot
	sc     data.Connector
}

func makeCreateTeapot(sc data.Connector) gimlet.RouteHandler {
	return &teapotCreateHandler{sc: sc}
}

func (h *teapotCreateHandler) Factory() gimlet.RouteHandler {
	return &teapotCreateHandler{sc: h.sc}
}

func (h *teapotCreateHandler) Parse(ctx context.Context, r *http.Request) error {
	body := utility.NewRequestReader(r)
	defer body.Close()

	h.teapot = restModel.APITeapot{}
	if err := gimlet.GetJSON(body, &h.teapot); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading teapot from JSON request body").Error(),
		}
	}
	if _, err := h.teapot.ToService(); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "invalid teapot").Error(),
		}
	}

	return nil
}

func (h *teapotCreateHandler) Run(ctx context.Context) gimlet.Responder {
	t, err := h.teapot.ToService()
	if err != nil {
		return gimlet.MakeJSONErrorResponder(errors.Wrap(err, "invalid teapot"))
	}

	res, err := h.sc.CreateTeapot(ctx, t)
	if err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "creating teapot"))
	}
	if err = resultError(res); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "creating teapot"))
	}

	status := res.Value
	if status.Errors > 0 {
		return gimlet.MakeJSONInternalErrorResponder(errors.Errorf("creating teapot: %s", status.FirstError))
	}
	if len(status.GeneratedKeys) == 0 {
		return gimlet.MakeJSONInternalErrorResponder(errors.New("insert succeeded but no id was generated"))
	}

	resp := gimlet.NewJSONResponse(restModel.APITeapotCreateResponse{ID: status.GeneratedKeys[0]})
	if err = resp.SetStatus(http.StatusCreated); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "setting status code %d", http.StatusCreated))
	}

	return resp
}

////////////////////////////////////////////////////////////////////////
//
// GET /teapot/{teapot_id}

type teapotGetHandler struct {
	id string
	sc data.Connector
}

func makeGetTeapot(sc data.Connector) gimlet.RouteHandler {
	return &teapotGetHandler{sc: sc}
}

func (h *teapotGetHandler) Factory() gimlet.RouteHandler {
	return &teapotGetHandler{sc: h.sc}
}

func (h *teapotGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)[teapotIDVar]
	return nil
}

func (h *teapotGetHandler) Run(ctx context.Context) gimlet.Responder {
	res, err := h.sc.FindTeapotById(ctx, h.id)
	if err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "finding teapot '%s'", h.id))
	}

	switch res.Kind {
	case db.Expected:
		apiTeapot := restModel.APITeapot{}
		apiTeapot.BuildFromService(res.Value)
		return gimlet.NewJSONResponse(apiTeapot)
	case db.Empty:
		resp := gimlet.NewTextResponse("")
		if err = resp.SetStatus(http.StatusNotFound); err != nil {
			return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "setting status code %d", http.StatusNotFound))
		}
		return resp
	default:
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(resultError(res), "finding teapot '%s'", h.id))
	}
}

////////////////////////////////////////////////////////////////////////
//
// GET /teapot

type teapotGetAllHandler struct {
	sc data.Connector
}

func makeGetAllTeapots(sc data.Connector) gimlet.RouteHandler {
	return &teapotGetAllHandler{sc: sc}
}

func (h *teapotGetAllHandler) Factory() gimlet.RouteHandler {
	return &teapotGetAllHandler{sc: h.sc}
}

func (h *teapotGetAllHandler) Parse(ctx context.Context, r *http.Request) error {
	return nil
}

func (h *teapotGetAllHandler) Run(ctx context.Context) gimlet.Responder {
	results, err := h.sc.FindAllTeapots(ctx)
	if err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "finding all teapots"))
	}

	out := make([]restModel.APITeapot, 0, len(results))
	for i, res := range results {
		if err = resultError(res); err != nil {
			grip.Error(message.WrapError(err, message.Fields{
				"message":  "aborting teapot listing",
				"position": i,
				"kind":     res.Kind.String(),
			}))
			return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, "finding all teapots"))
		}
		apiTeapot := restModel.APITeapot{}
		apiTeapot.BuildFromService(res.Value)
		out = append(out, apiTeapot)
	}

	return gimlet.NewJSONResponse(out)
}

////////////////////////////////////////////////////////////////////////
//
// PUT /teapot/{teapot_id}

type teapotUpdateHandler struct {
	id    string
	patch restModel.APITeapotPatch
	sc    data.Connector
}

func makeUpdateTeapot(sc data.Connector) gimlet.RouteHandler {
	return &teapotUpdateHandler{sc: sc}
}

func (h *teapotUpdateHandler) Factory() gimlet.RouteHandler {
	return &teapotUpdateHandler{sc: h.sc}
}

func (h *teapotUpdateHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)[teapotIDVar]

	body := utility.NewRequestReader(r)
	defer body.Close()

	h.patch = restModel.APITeapotPatch{}
	if err := gimlet.GetJSON(body, &h.patch); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading teapot update from JSON request body").Error(),
		}
	}
	if _, err := h.patch.ToService(); err != nil {
		return gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "invalid teapot update").Error(),
		}
	}

	return nil
}

func (h *teapotUpdateHandler) Run(ctx context.Context) gimlet.Responder {
	patch, err := h.patch.ToService()
	if err != nil {
		return gimlet.MakeJSONErrorResponder(errors.Wrap(err, "invalid teapot update"))
	}

	res, err := h.sc.UpdateTeapot(ctx, h.id, patch)
	if err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "updating teapot '%s'", h.id))
	}

	return writeResponder(res, fmt.Sprintf("updating teapot '%s'", h.id), h.id)
}

////////////////////////////////////////////////////////////////////////
//
// DELETE /teapot/{teapot_id}

type teapotDeleteHandler struct {
	id string
	sc data.Connector
}

func makeDeleteTeapot(sc data.Connector) gimlet.RouteHandler {
	return &teapotDeleteHandler{sc: sc}
}

func (h *teapotDeleteHandler) Factory() gimlet.RouteHandler {
	return &teapotDeleteHandler{sc: h.sc}
}

func (h *teapotDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)[teapotIDVar]
	return nil
}

func (h *teapotDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	res, err := h.sc.DeleteTeapot(ctx, h.id)
	if err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrapf(err, "deleting teapot '%s'", h.id))
	}

	return writeResponder(res, fmt.Sprintf("deleting teapot '%s'", h.id), h.id)
}

////////////////////////////////////////////////////////////////////////
//
// helpers

// resultError returns the error describing a result that did not carry
// the expected value, or nil for an Expected result.
func resultError[T any](res db.Result[T]) error {
	switch res.Kind {
	case db.Expected:
		return nil
	case db.Unexpected:
		return errors.Errorf("unexpected response from database: %s", res.Raw)
	case db.Empty:
		return db.ErrNoResponse
	default:
		return errors.Errorf("programmatic error: unknown result kind %s", res.Kind)
	}
}

// writeResponder maps the status of an update or delete to a response.
func writeResponder(res db.Result[db.WriteStatus], op, id string) gimlet.Responder {
	if err := resultError(res); err != nil {
		return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, op))
	}

	status := res.Value
	if status.Errors > 0 {
		return gimlet.MakeJSONInternalErrorResponder(errors.Errorf("%s: %s", op, status.String()))
	}
	if !status.Matched() {
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("teapot '%s' not found", id),
		})
	}

	return gimlet.NewTextResponse("")
}
