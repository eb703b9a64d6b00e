package relay

func HubClientWithServerURL(serverUrl string) HubClientOption {
	return func(c *HubClient) {
		c.serverURL = serverUrl
	}
}

func HubClientWithEventSink(sink EventSink) HubClientOption {
	return func(c *HubClient) {
		c.eventSink = sink
	}
}

func HubClientWithConnectionStatusCallback(callback ClientConnectionStatusCallback) HubClientOption {
	return func(c *HubClient) {
		c.connectionStatusCallback = callback
	}
}
