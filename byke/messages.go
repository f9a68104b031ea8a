package byke

import (
	"fmt"
	"reflect"
)

// MessageType registers a message of type M with the App using App.AddMessage.
func MessageType[M any]() AddMessageType {
	return messageType[M]{}
}

type AddMessageType interface {
	configureMessageIn(app *App)
}

type messageType[M any] struct{}

func (messageType[M]) configureMessageIn(app *App) {
	if _, exists := ResourceOf[Messages[M]](app.World()); exists {
		return
	}

	app.InsertResource(Messages[M]{})
	app.AddSystems(Last, updateMessagesSystem[M])
}

func updateMessagesSystem[M any](messages *Messages[M]) {
	messages.Update()
}

type MessageId uint64

type messageWithId[M any] struct {
	Id      MessageId
	Message M
}

// Messages is a double buffered message queue. Messages written during a frame can
// be read until the end of the next frame.
type Messages[M any] struct {
	lastId MessageId
	curr   []messageWithId[M]
	prev   []messageWithId[M]
}

// Send appends a message to the queue.
func (m *Messages[M]) Send(message M) {
	m.lastId += 1

	m.curr = append(m.curr, messageWithId[M]{
		Id:      m.lastId,
		Message: message,
	})
}

// Update swaps the buffers. Messages sent two updates ago are dropped.
func (m *Messages[M]) Update() {
	m.curr, m.prev = m.prev, m.curr

	// reuse the memory of the old buffer
	clear(m.curr)
	m.curr = m.curr[:0]
}

// Len returns the number of messages currently held by the queue.
func (m *Messages[M]) Len() int {
	return len(m.prev) + len(m.curr)
}

func (m *Messages[M]) appendSince(target []M, lastId MessageId) ([]M, MessageId) {
	for _, buffer := range [][]messageWithId[M]{m.prev, m.curr} {
		for _, message := range buffer {
			if message.Id <= lastId {
				continue
			}

			target = append(target, message.Message)
			lastId = message.Id
		}
	}

	return target, lastId
}

// MessageWriter is a SystemParam to send messages of type M.
type MessageWriter[M any] struct {
	messages *Messages[M]
}

func (w *MessageWriter[M]) Write(message M) {
	w.messages.Send(message)
}

func (*MessageWriter[M]) init(world *World) SystemParamState {
	writer := &MessageWriter[M]{messages: messagesOf[M](world)}
	return valueSystemParamState(reflect.ValueOf(writer))
}

// MessageReader is a SystemParam to read messages of type M. Each reader
// keeps track of the messages it has already seen.
type MessageReader[M any] struct {
	messages *Messages[M]
	lastId   MessageId
	scratch  []M
}

// Read returns all messages that were not read by this reader before.
// The returned slice is only valid until the next call to Read.
func (r *MessageReader[M]) Read() []M {
	r.scratch, r.lastId = r.messages.appendSince(r.scratch[:0], r.lastId)
	return r.scratch
}

func (*MessageReader[M]) init(world *World) SystemParamState {
	reader := &MessageReader[M]{messages: messagesOf[M](world)}
	return valueSystemParamState(reflect.ValueOf(reader))
}

func messagesOf[M any](world *World) *Messages[M] {
	messages, ok := ResourceOf[Messages[M]](world)
	if !ok {
		panic(fmt.Sprintf("message type %s not registered", reflect.TypeFor[M]()))
	}

	return messages
}
