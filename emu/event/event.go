/*
 * PCRTC - Event scheduler
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package event

// Virtual time is counted in nanoseconds.
const (
	Nanosecond  = 1
	Microsecond = 1000 * Nanosecond
	Millisecond = 1000 * Microsecond
	Second      = 1000 * Millisecond
)

type Callback = func(iarg int)

// Event is a handle to a scheduled callback. It stays valid after the
// callback fires or is cancelled, but is no longer pending.
type Event struct {
	time int        // Time relative to previous event.
	cb   Callback   // Function to callback
	iarg int        // Integer argument
	list *EventList // List event is queued on, nil when not pending.
	prev *Event
	next *Event
}

type EventList struct {
	head *Event
	tail *Event
	now  int64 // Current virtual time.
}

// Create an empty event list at time zero.
func NewEventList() *EventList {
	return &EventList{}
}

// Pending reports whether the event is still waiting to fire.
func (ev *Event) Pending() bool {
	return ev != nil && ev.list != nil
}

// Add an event
func (el *EventList) AddEvent(cb Callback, time int, iarg int) *Event {
	ev := &Event{cb: cb, time: time, iarg: iarg}

	// If time is 0 process event immediately
	if time <= 0 {
		cb(iarg)
		return ev
	}

	ev.list = el
	evptr := el.head
	// If empty put on head
	if evptr == nil {
		el.head = ev
		el.tail = ev
		return ev
	}

	// Scan for place to install it, events at the same time fire in
	// the order they were added.
	for evptr != nil {
		if ev.time < evptr.time {
			// Remove current time from next time
			evptr.time -= ev.time
			ev.prev = evptr.prev
			ev.next = evptr
			evptr.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				el.head = ev
			}
			return ev
		}
		// Make new event relative to this one
		ev.time -= evptr.time
		evptr = evptr.next
	}

	// Get here, put it on tail of list
	ev.prev = el.tail
	el.tail.next = ev
	el.tail = ev
	return ev
}

// Remove an event from the list. Cancelling an event that already
// fired or was cancelled does nothing.
func (el *EventList) CancelEvent(ev *Event) {
	if ev == nil || ev.list != el {
		return
	}

	nxt := ev.next
	// If next event give time to next event
	if nxt != nil {
		nxt.time += ev.time
		nxt.prev = ev.prev
	} else {
		el.tail = ev.prev
	}

	// Point previous event next to next
	if ev.prev != nil {
		ev.prev.next = nxt
	} else {
		el.head = nxt
	}
	ev.prev = nil
	ev.next = nil
	ev.list = nil
}

// Advance time by t, firing every event that comes due in time order.
// Events added by a callback are relative to the time that callback fired.
func (el *EventList) Advance(t int) {
	for {
		evptr := el.head
		if evptr == nil || evptr.time > t {
			if evptr != nil {
				evptr.time -= t
			}
			el.now += int64(t)
			return
		}

		t -= evptr.time
		el.now += int64(evptr.time)

		// Unlink head, next event time is now relative to current time.
		el.head = evptr.next
		if el.head != nil {
			el.head.prev = nil
		} else {
			el.tail = nil
		}
		evptr.next = nil
		evptr.list = nil
		evptr.time = 0
		evptr.cb(evptr.iarg)
	}
}

// Return true if any event is pending.
func (el *EventList) AnyEvent() bool {
	return el.head != nil
}

// Return time until the next event fires.
func (el *EventList) NextEvent() (int, bool) {
	if el.head == nil {
		return 0, false
	}
	return el.head.time, true
}

// Return current virtual time.
func (el *EventList) Now() int64 {
	return el.now
}
