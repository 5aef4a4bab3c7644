/*
   Copyright 2026 Network Monitor authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package stompclient

import (
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestStrandRunsInPostOrder(t *testing.T) {
	var s strand
	const n = 200

	var got []int
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		i := i
		s.post(func() {
			got = append(got, i)
			if i == n-1 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the strand to drain")
	}
	assert.Equal(t, len(got), n)
	for i, v := range got {
		assert.Equal(t, v, i)
	}
}

func TestStrandNeverOverlaps(t *testing.T) {
	var s strand
	const n = 100

	var running int
	var maxRunning int
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		s.post(func() {
			mu.Lock()
			running++
			if running > maxRunning {
				maxRunning = running
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	assert.Equal(t, maxRunning, 1)
}

func TestStrandRestartsAfterDraining(t *testing.T) {
	var s strand

	first := make(chan struct{})
	s.post(func() { close(first) })
	<-first

	// The drain goroutine has exited by now or will shortly; a later post
	// must start a fresh one.
	second := make(chan struct{})
	s.post(func() { close(second) })
	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("strand did not run a task posted after going idle")
	}
}
