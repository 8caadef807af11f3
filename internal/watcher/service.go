package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"minwon-backend/pkg/logger"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// envelope is the wire form of a document change event on the Pub/Sub topic.
type envelope struct {
	Kind   Kind                   `json:"kind"`
	Path   string                 `json:"path"`
	Before map[string]interface{} `json:"before"`
	After  map[string]interface{} `json:"after"`
}

type route struct {
	kind    Kind
	pattern []string
	handler HandlerFunc
}

// Service receives document change events from a Pub/Sub subscription and
// routes them to the handlers registered for their path template.
type Service struct {
	pubsubClient *pubsub.Client
	topicName    string
	subName      string
	routes       []route
	log          logger.Logger
}

func NewService(projectID, topicName, credentialsFile string, log logger.Logger) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Service{
		pubsubClient: client,
		topicName:    topicName,
		subName:      topicName + "-sub", // Convention: topic-sub
		log:          log,
	}, nil
}

// Handle registers a handler for mutations of the given kind on documents
// matching a path template such as "complaints/{id}".
func (s *Service) Handle(kind Kind, pattern string, handler HandlerFunc) {
	s.routes = append(s.routes, route{
		kind:    kind,
		pattern: strings.Split(pattern, "/"),
		handler: handler,
	})
}

// Start ensures the subscription exists and blocks receiving events until
// ctx is cancelled. Messages are always acked; handler failures must not
// fail the originating document mutation.
func (s *Service) Start(ctx context.Context) {
	s.log.Info("starting change event watcher", map[string]interface{}{
		"topic":        s.topicName,
		"subscription": s.subName,
	})

	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		s.log.Error("failed to check subscription existence", map[string]interface{}{"error": err.Error()})
		return
	}

	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		topicExists, err := topic.Exists(ctx)
		if err != nil {
			s.log.Error("failed to check topic existence", map[string]interface{}{"error": err.Error()})
			return
		}
		if !topicExists {
			s.log.Error("events topic does not exist", map[string]interface{}{"topic": s.topicName})
			return
		}

		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			s.log.Error("failed to create subscription", map[string]interface{}{"error": err.Error()})
			return
		}
		s.log.Info("created subscription", map[string]interface{}{"subscription": s.subName})
	}

	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		s.dispatch(ctx, msg.Data)
		msg.Ack()
	})
	if err != nil {
		s.log.Error("error receiving events", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) dispatch(ctx context.Context, data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.log.Warn("failed to unmarshal change event", map[string]interface{}{"error": err.Error()})
		return
	}

	segments := strings.Split(env.Path, "/")
	for _, rt := range s.routes {
		if rt.kind != env.Kind {
			continue
		}
		params, ok := matchPattern(rt.pattern, segments)
		if !ok {
			continue
		}

		event := ChangeEvent{
			Kind:   env.Kind,
			Path:   env.Path,
			Params: params,
			Before: env.Before,
			After:  env.After,
		}
		if err := rt.handler(ctx, event); err != nil {
			s.log.Error("change event handler failed", map[string]interface{}{
				"path":  env.Path,
				"kind":  env.Kind,
				"error": err.Error(),
			})
		}
	}
}

// matchPattern binds path segments against a template; segments wrapped in
// braces capture the corresponding path value.
func matchPattern(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			params[seg[1:len(seg)-1]] = segments[i]
			continue
		}
		if seg != segments[i] {
			return nil, false
		}
	}
	return params, true
}
