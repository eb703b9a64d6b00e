package relay

func HubServerAddress(address string) HubServerOption {
	return func(s *HubServer) {
		s.address = address
	}
}

func HubServerTLS(certFile, keyFile string) HubServerOption {
	return func(s *HubServer) {
		s.certFile = &certFile
		s.keyFile = &keyFile
	}
}

func HubServerWithIdentity(identity string) HubServerOption {
	return func(s *HubServer) {
		s.identity = identity
	}
}

func HubServerWithEventSource(source EventSource) HubServerOption {
	return func(s *HubServer) {
		s.eventSource = source
	}
}

func HubServerWithEventSink(sink EventSink) HubServerOption {
	return func(s *HubServer) {
		s.eventSink = sink
	}
}
