package transport

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// reply is the parsed backend envelope.
type reply struct {
	code    string
	message string
	data    gjson.Result
}

// parse reads the envelope fields out of raw.
func (e Envelope) parse(raw []byte) (reply, error) {
	if !gjson.ValidBytes(raw) {
		return reply{}, errors.New("response is not valid JSON")
	}
	fields := gjson.GetManyBytes(raw, e.CodeField, e.MessageField, e.DataField)
	if !fields[0].Exists() {
		return reply{}, errors.Errorf("response has no %q field", e.CodeField)
	}
	return reply{
		code:    fields[0].String(),
		message: fields[1].String(),
		data:    fields[2],
	}, nil
}

// message extracts a best-effort message from a non-2xx body.
func (e Envelope) message(raw []byte) string {
	if gjson.ValidBytes(raw) {
		if m := gjson.GetBytes(raw, e.MessageField); m.Exists() {
			return m.String()
		}
	}
	const maxBody = 256
	if len(raw) > maxBody {
		return string(raw[:maxBody]) + "..."
	}
	return string(raw)
}

// decodeData unmarshals the envelope data into out. A missing or null data
// field leaves out untouched.
func (r reply) decodeData(out any) error {
	if out == nil || !r.data.Exists() || r.data.Type == gjson.Null {
		return nil
	}
	return errors.Wrap(json.Unmarshal([]byte(r.data.Raw), out), "decode data")
}
