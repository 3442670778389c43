package comm

import (
	"testing"
	"time"
)

func TestSendBeforeRecv(t *testing.T) {
	lb := NewLoopback(2)
	a, b := lb.Endpoint(0), lb.Endpoint(1)

	msg := []float64{1, 2, 3}
	sreq, err := a.Isend(msg, 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if done, _ := sreq.Test(); !done {
		t.Fatal("loopback send should complete immediately")
	}

	// sender may reuse its buffer once Isend returns
	msg[0] = 99

	buf := make([]float64, 3)
	rreq, err := b.Irecv(buf, 0, 7)
	if err != nil {
		t.Fatal(err)
	}
	if err := rreq.Wait(); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 {
		t.Fatalf("received %v, want [1 2 3]", buf)
	}
}

func TestRecvBeforeSend(t *testing.T) {
	lb := NewLoopback(2)
	a, b := lb.Endpoint(0), lb.Endpoint(1)

	buf := make([]float64, 2)
	rreq, err := b.Irecv(buf, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if done, _ := rreq.Test(); done {
		t.Fatal("receive completed with nothing sent")
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		if _, err := a.Isend([]float64{5, 6}, 1, 3); err != nil {
			t.Error(err)
		}
	}()
	if err := rreq.Wait(); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 5 || buf[1] != 6 {
		t.Fatalf("received %v, want [5 6]", buf)
	}
}

func TestTagIsolation(t *testing.T) {
	lb := NewLoopback(2)
	a, b := lb.Endpoint(0), lb.Endpoint(1)

	if _, err := a.Isend([]float64{1}, 1, 10); err != nil {
		t.Fatal(err)
	}
	buf := make([]float64, 1)
	rreq, err := b.Irecv(buf, 0, 11)
	if err != nil {
		t.Fatal(err)
	}
	if done, _ := rreq.Test(); done {
		t.Fatal("message with tag 10 matched receive with tag 11")
	}

	if _, err := a.Isend([]float64{2}, 1, 11); err != nil {
		t.Fatal(err)
	}
	if err := rreq.Wait(); err != nil {
		t.Fatal(err)
	}
	if buf[0] != 2 {
		t.Fatalf("received %v, want [2]", buf)
	}
}

func TestMatchingIsFIFO(t *testing.T) {
	lb := NewLoopback(2)
	a, b := lb.Endpoint(0), lb.Endpoint(1)

	for _, v := range []float64{1, 2, 3} {
		if _, err := a.Isend([]float64{v}, 1, 0); err != nil {
			t.Fatal(err)
		}
	}
	for want := 1.0; want <= 3; want++ {
		buf := make([]float64, 1)
		rreq, err := b.Irecv(buf, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if err := rreq.Wait(); err != nil {
			t.Fatal(err)
		}
		if buf[0] != want {
			t.Fatalf("received %v, want %v", buf[0], want)
		}
	}
}

func TestOversizedMessage(t *testing.T) {
	lb := NewLoopback(2)
	a, b := lb.Endpoint(0), lb.Endpoint(1)

	if _, err := a.Isend([]float64{1, 2, 3}, 1, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Irecv(make([]float64, 2), 0, 0); err == nil {
		t.Fatal("expected error for message longer than receive buffer")
	}
}

func TestEndpointValidation(t *testing.T) {
	lb := NewLoopback(2)
	a := lb.Endpoint(0)
	if a.Rank() != 0 || a.Size() != 2 {
		t.Fatalf("endpoint rank/size %d/%d", a.Rank(), a.Size())
	}
	if _, err := a.Isend(nil, 2, 0); err == nil {
		t.Fatal("expected error for out-of-range destination")
	}
	if _, err := a.Irecv(nil, -1, 0); err == nil {
		t.Fatal("expected error for out-of-range source")
	}
}
