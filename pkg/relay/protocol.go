package relay

import "encoding/json"

type Request struct {
	Publish   *EventPublishRequest `json:"publish,omitempty"`
	Subscribe *SubscribeRequest    `json:"subscribe,omitempty"`
}

type EventPublishRequest struct {
	RequestID string `json:"request_id"`
	Type      int    `json:"type"`
	Data      []byte `json:"data"`
}

type SubscribeRequest struct {
	SubscribeID string `json:"subscribe_id"`
	Offset      int64  `json:"offset"` // Events with offsets greater than this value are streamed.
}

type Response struct {
	EventPublishResponse        *EventPublishResponse        `json:"publish,omitempty"`
	RelayServerIdentifyResponse *RelayServerIdentifyResponse `json:"identify,omitempty"`
	SubscribeResponse           *SubscribeResponse           `json:"subscribe,omitempty"`
	Notice                      *RelayServerNotice           `json:"notice,omitempty"`
}

type EventPublishResponse struct {
	RequestID string `json:"request_id"`
	OK        bool   `json:"ok"`
	Reason    string `json:"reason,omitempty"` // Event ID when OK. Error message otherwise.
}

type RelayServerIdentifyResponse struct {
	Identity string `json:"identity"`
}

type SubscribeResponse struct {
	SubscribeID string `json:"subscribe_id"`
	Event       *Event `json:"event,omitempty"`
}

type RelayServerNotice struct {
	Message string `json:"message"`
}

// ParseRequest parses a request from the client.
// The return value can be:
//
//	EventPublishRequest
//	SubscribeRequest
func ParseRequest(data []byte) (any, error) {
	request := &Request{}
	if err := json.Unmarshal(data, request); err != nil {
		return nil, err
	}

	if request.Publish != nil {
		return request.Publish, nil
	}

	if request.Subscribe != nil {
		return request.Subscribe, nil
	}

	return nil, nil
}

// ParseResponse parses a response from the server.
// The return value can be:
//
//	EventPublishResponse
//	RelayServerIdentifyResponse
//	SubscribeResponse
//	RelayServerNotice
func ParseResponse(data []byte) (any, error) {
	response := &Response{}
	if err := json.Unmarshal(data, response); err != nil {
		return nil, err
	}

	if response.EventPublishResponse != nil {
		return response.EventPublishResponse, nil
	}

	if response.RelayServerIdentifyResponse != nil {
		return response.RelayServerIdentifyResponse, nil
	}

	if response.SubscribeResponse != nil {
		return response.SubscribeResponse, nil
	}

	if response.Notice != nil {
		return response.Notice, nil
	}

	return nil, nil
}
