package netenact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/FedorSmirnov89/enact"
	"github.com/VictoriaMetrics/easyproto"
)

func HandleAll(rw http.ResponseWriter, r *http.Request, j enact.Journal, p enact.WorkflowProvider) bool {
	if HandleAppend(rw, r, j) {
		return true
	}
	if HandleGetRecords(rw, r, j) {
		return true
	}
	if HandleInit(rw, r, p) {
		return true
	}
	if HandlePlay(rw, r, p) {
		return true
	}
	if HandlePause(rw, r, p) {
		return true
	}
	if HandleGetState(rw, r, p) {
		return true
	}

	return false
}

func HandleAppend(rw http.ResponseWriter, r *http.Request, j enact.Journal) bool {
	if r.URL.Path != "/enact.v1.Journal/Append" {
		return false
	}

	b, err := readBody(r)
	if err != nil {
		writeInvalidArgumentError(rw, err.Error())
		return true
	}

	rec := &enact.Record{}
	if err := enact.UnmarshalRecord(b, rec); err != nil {
		writeInvalidArgumentError(rw, fmt.Sprintf("failed to unmarshal record: %v", err))
		return true
	}

	if err := j.Append(rec); err != nil {
		writeUnknownError(rw, err.Error())
		return true
	}

	writeMsg(rw, enact.MarshalRecord(rec, nil))
	return true
}

func HandleGetRecords(rw http.ResponseWriter, r *http.Request, j enact.Journal) bool {
	if r.URL.Path != "/enact.v1.Journal/GetRecords" {
		return false
	}

	b, err := readBody(r)
	if err != nil {
		writeInvalidArgumentError(rw, err.Error())
		return true
	}

	q := enact.Query{}
	if err := enact.UnmarshalQuery(b, &q); err != nil {
		writeInvalidArgumentError(rw, fmt.Sprintf("failed to unmarshal query: %v", err))
		return true
	}

	res, err := j.Records(q)
	if errors.Is(err, enact.ErrNotFound) {
		writeNotFoundError(rw, err.Error())
		return true
	} else if err != nil {
		writeUnknownError(rw, err.Error())
		return true
	}

	writeMsg(rw, enact.MarshalQueryResult(res, nil))
	return true
}

func HandleInit(rw http.ResponseWriter, r *http.Request, p enact.WorkflowProvider) bool {
	if r.URL.Path != "/enact.v1.Control/Init" {
		return false
	}

	b, err := readBody(r)
	if err != nil {
		writeInvalidArgumentError(rw, err.Error())
		return true
	}

	inputB, err := enact.UnmarshalInitRequest(b)
	if err != nil {
		writeInvalidArgumentError(rw, fmt.Sprintf("failed to unmarshal init request: %v", err))
		return true
	}

	var input enact.Document
	if len(inputB) > 0 {
		if err := json.Unmarshal(inputB, &input); err != nil {
			writeInvalidArgumentError(rw, fmt.Sprintf("failed to unmarshal input document: %v", err))
			return true
		}
	}

	en := p.EnactableApplication()
	if err := en.Init(input); err != nil {
		writeUnknownError(rw, err.Error())
		return true
	}

	writeMsg(rw, enact.MarshalSnapshot(en.Snapshot(), nil))
	return true
}

func HandlePlay(rw http.ResponseWriter, r *http.Request, p enact.WorkflowProvider) bool {
	if r.URL.Path != "/enact.v1.Control/Play" {
		return false
	}

	en := p.EnactableApplication()

	output, err := en.Play(r.Context())
	if enact.IsErrStopped(err) {
		writeStoppedError(rw, err.Error())
		return true
	} else if err != nil {
		writeUnknownError(rw, err.Error())
		return true
	}

	outputB, err := json.Marshal(output)
	if err != nil {
		writeUnknownError(rw, fmt.Sprintf("failed to marshal output document: %v", err))
		return true
	}

	res := &enact.PlayResult{
		Output:   outputB,
		Snapshot: en.Snapshot(),
	}

	writeMsg(rw, enact.MarshalPlayResult(res, nil))
	return true
}

func HandlePause(rw http.ResponseWriter, r *http.Request, p enact.WorkflowProvider) bool {
	if r.URL.Path != "/enact.v1.Control/Pause" {
		return false
	}

	en := p.EnactableApplication()
	if err := en.Pause(); err != nil {
		writeUnknownError(rw, err.Error())
		return true
	}

	writeMsg(rw, enact.MarshalSnapshot(en.Snapshot(), nil))
	return true
}

func HandleGetState(rw http.ResponseWriter, r *http.Request, p enact.WorkflowProvider) bool {
	if r.URL.Path != "/enact.v1.Control/GetState" {
		return false
	}

	writeMsg(rw, enact.MarshalSnapshot(p.EnactableApplication().Snapshot(), nil))
	return true
}

func readBody(r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return b, nil
}

func writeMsg(rw http.ResponseWriter, b []byte) {
	rw.Header().Set("Content-Type", "application/proto")
	rw.WriteHeader(http.StatusOK)

	_, _ = rw.Write(b)
}

func writeInvalidArgumentError(rw http.ResponseWriter, message string) {
	rw.Header().Set("Content-Type", "application/proto")
	rw.WriteHeader(http.StatusBadRequest)

	_, _ = rw.Write(marshalError("invalid_argument", message))
}

func writeUnknownError(rw http.ResponseWriter, message string) {
	rw.Header().Set("Content-Type", "application/proto")
	rw.WriteHeader(http.StatusInternalServerError)

	_, _ = rw.Write(marshalError("unknown", message))
}

func writeNotFoundError(rw http.ResponseWriter, message string) {
	rw.Header().Set("Content-Type", "application/proto")
	rw.WriteHeader(http.StatusNotFound)

	_, _ = rw.Write(marshalError("not_found", message))
}

func writeStoppedError(rw http.ResponseWriter, message string) {
	rw.Header().Set("Content-Type", "application/proto")
	rw.WriteHeader(http.StatusConflict)

	_, _ = rw.Write(marshalError("stopped", message))
}

func marshalError(code, message string) []byte {
	m := &easyproto.Marshaler{}
	mm := m.MessageMarshaler()

	if code != "" {
		mm.AppendString(1, code)
	}
	if message != "" {
		mm.AppendString(2, message)
	}

	return m.Marshal(nil)
}

func unmarshalError(src []byte) (code, message string, err error) {
	var fc easyproto.FieldContext
	for len(src) > 0 {
		src, err = fc.NextField(src)
		if err != nil {
			return "", "", fmt.Errorf("cannot read next field")
		}
		switch fc.FieldNum {
		case 1:
			v, ok := fc.String()
			if !ok {
				return "", "", fmt.Errorf("cannot read code field")
			}
			code = strings.Clone(v)
		case 2:
			v, ok := fc.String()
			if !ok {
				return "", "", fmt.Errorf("cannot read message field")
			}
			message = strings.Clone(v)
		}
	}

	return code, message, nil
}
