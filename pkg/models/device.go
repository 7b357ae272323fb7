package models

// Device is a camera under health supervision.
type Device struct {
	Name   string   `json:"name"`
	IP     string   `json:"ip"`
	Groups []string `json:"groups,omitempty"`
}

// ProbeResult is the outcome of a single connectivity + media check against
// one device. Latencies are only meaningful when the matching sub-probe
// succeeded.
type ProbeResult struct {
	ConnectivityOK bool   `json:"connectivity_ok"`
	ConnectivityMs int64  `json:"connectivity_ms"`
	MediaOK        bool   `json:"media_ok"`
	MediaMs        int64  `json:"media_ms"`
	Error          string `json:"error,omitempty"`
}
