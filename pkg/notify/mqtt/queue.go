package mqtt

import (
	"container/list"
	"net/url"
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// ConnectHandler handles connect/disconnect events.
type ConnectHandler func(*Queue)

// Queue wraps an MQTT client with topic prefix and local dispatching,
// so multiple handlers can share one broker subscription.
type Queue struct {
	Client       paho.Client
	TopicPrefix  string
	OnConnect    ConnectHandler
	OnDisconnect ConnectHandler

	subsLock sync.RWMutex
	subs     map[string]*list.List
}

// Subscription is a handler registered on a topic filter.
type Subscription struct {
	// Token is set only when the filter is subscribed to the broker.
	Token paho.Token

	queue   *Queue
	elm     *list.Element
	filter  string
	handler Handler
}

// DefaultBrokerURL is used when no broker URL is configured.
const DefaultBrokerURL = "mqtt://localhost:1883/airsense/"

// MatchTopic matches topic with a filter which may contain + and #.
func MatchTopic(topic, filter string) bool {
	tokensT, tokensF := strings.Split(topic, "/"), strings.Split(filter, "/")
	for i, token := range tokensF {
		if token == "#" && i+1 == len(tokensF) {
			return true
		}
		if i >= len(tokensT) {
			return false
		}
		if token != "+" && token != tokensT[i] {
			return false
		}
	}
	return len(tokensF) == len(tokensT)
}

func isWildcard(filter string) bool {
	return strings.ContainsAny(filter, "+#")
}

// ClientOptionsFromURL creates ClientOptions from URL. The path of the URL
// is used as the topic prefix, query client-id sets the client ID.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	server := u.Scheme
	switch server {
	case "", "mqtt":
		server = "tcp"
	case "mqtts":
		server = "ssl"
	}
	server += "://" + u.Host

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, strings.TrimPrefix(u.Path, "/"), nil
}

// NewQueue creates Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix, subs: make(map[string]*list.List)}
	options.SetOnConnectHandler(q.onConnect)
	options.SetConnectionLostHandler(q.onConnectionLost)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates Queue from URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer.
func (q *Queue) Close() error {
	q.Client.Disconnect(250)
	return nil
}

// Sub registers handler on a topic filter.
func (q *Queue) Sub(filter string, handler Handler) *Subscription {
	sub := &Subscription{queue: q, filter: filter, handler: handler}
	q.subsLock.Lock()
	lst := q.subs[filter]
	newSub := lst == nil
	if newSub {
		lst = list.New()
		q.subs[filter] = lst
	}
	sub.elm = lst.PushBack(sub)
	q.subsLock.Unlock()

	if newSub {
		glog.V(2).Infof("SUB %q", q.TopicPrefix+filter)
		sub.Token = q.Client.Subscribe(q.TopicPrefix+filter, 0, q.dispatch)
	}
	return sub
}

// Pub publishes to a topic.
func (q *Queue) Pub(topic string, payload []byte) paho.Token {
	return q.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (q *Queue) PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token {
	glog.V(3).Infof("PUB %q %d bytes", q.TopicPrefix+topic, len(payload))
	return q.Client.Publish(q.TopicPrefix+topic, qos, retain, payload)
}

// Resubscribe subscribes all registered filters, after reconnecting
// with a clean session.
func (q *Queue) Resubscribe() paho.Token {
	filters := make(map[string]byte)
	q.subsLock.RLock()
	for filter := range q.subs {
		filters[q.TopicPrefix+filter] = 0
	}
	q.subsLock.RUnlock()
	if len(filters) == 0 {
		return &paho.DummyToken{}
	}
	glog.V(2).Infof("SUB %d filters", len(filters))
	return q.Client.SubscribeMultiple(filters, q.dispatch)
}

func (q *Queue) onConnect(paho.Client) {
	glog.Info("mqtt connected")
	q.Resubscribe()
	if h := q.OnConnect; h != nil {
		h(q)
	}
}

func (q *Queue) onConnectionLost(_ paho.Client, err error) {
	glog.Warningf("mqtt connection lost: %v", err)
	if h := q.OnDisconnect; h != nil {
		h(q)
	}
}

func (q *Queue) handlers(topic string) (handlers []Handler) {
	q.subsLock.RLock()
	defer q.subsLock.RUnlock()
	for filter, lst := range q.subs {
		if filter != topic && (!isWildcard(filter) || !MatchTopic(topic, filter)) {
			continue
		}
		for elm := lst.Front(); elm != nil; elm = elm.Next() {
			handlers = append(handlers, elm.Value.(*Subscription).handler)
		}
	}
	return
}

func (q *Queue) dispatch(_ paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, q.TopicPrefix) {
		return
	}
	topic = topic[len(q.TopicPrefix):]
	glog.V(3).Infof("RCV %q", topic)
	payload := msg.Payload()
	for _, h := range q.handlers(topic) {
		h(topic, payload)
	}
}

// Close removes the handler, the filter is unsubscribed from the broker
// when no handlers remain.
func (s *Subscription) Close() error {
	q := s.queue
	q.subsLock.Lock()
	lst := q.subs[s.filter]
	var unsub bool
	if lst != nil && s.elm != nil {
		lst.Remove(s.elm)
		s.elm = nil
		if unsub = lst.Len() == 0; unsub {
			delete(q.subs, s.filter)
		}
	}
	q.subsLock.Unlock()
	if !unsub {
		return nil
	}
	glog.V(2).Infof("UNSUB %q", q.TopicPrefix+s.filter)
	token := q.Client.Unsubscribe(q.TopicPrefix + s.filter)
	token.Wait()
	return token.Error()
}
