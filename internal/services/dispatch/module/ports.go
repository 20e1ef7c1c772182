package module

import dom "mvpauth/internal/services/dispatch/domain"

// Ports holds the ports exposed by the dispatch module
type Ports struct {
	Dispatcher dom.DispatchPort
}

// Needs are optional ports injected from other modules
type Needs struct {
	Recorder dom.Recorder
	Peer     dom.PeerCheck
}
