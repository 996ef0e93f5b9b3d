package chat

import (
	"testing"

	"github.com/jorkle/chatscreen/internal/models"
)

func TestLogKeepsInsertionOrder(t *testing.T) {
	var l Log
	var want []string
	for _, text := range []string{"one", "two", "three", "four"} {
		m := models.NewTextMessage(models.User, text)
		want = append(want, m.ID)
		l = l.Append(m)
	}

	got := l.All()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.ID != want[i] {
			t.Errorf("entry %d = %s, want %s", i, m.ID, want[i])
		}
	}
}

func TestLogAppendLeavesEarlierSnapshotsAlone(t *testing.T) {
	base := NewLog(models.NewTextMessage(models.User, "a"))
	left := base.Append(models.NewTextMessage(models.User, "left"))
	right := base.Append(models.NewTextMessage(models.User, "right"))

	if base.Len() != 1 {
		t.Fatalf("base len = %d, want 1", base.Len())
	}
	if text, _ := left.All()[1].Text(); text != "left" {
		t.Errorf("left tail = %q", text)
	}
	if text, _ := right.All()[1].Text(); text != "right" {
		t.Errorf("right tail = %q", text)
	}

	snap := left.All()
	snap[0] = models.NewTextMessage(models.System, "mutated")
	if text, _ := left.All()[0].Text(); text != "a" {
		t.Errorf("All() exposed the backing array, head = %q", text)
	}
}

func TestLogMixedKindsKeepTheirPayloads(t *testing.T) {
	photo := models.Photo{Base64: "aGVsbG8=", Locator: "file:///p.jpg"}
	audio := models.AudioPayload{Sound: models.PlayHandle{ID: "s1"}, Duration: "0:03", Locator: "file:///a.wav"}

	l := NewLog(
		models.NewTextMessage(models.User, "hi"),
		models.NewAudioMessage(models.User, audio),
		models.NewPhotoMessage(models.User, photo),
		models.NewTextMessage(models.System, "reply"),
	)

	wantKinds := []models.MessageKind{models.TextKind, models.AudioKind, models.PhotoKind, models.TextKind}
	msgs := l.All()
	if len(msgs) != len(wantKinds) {
		t.Fatalf("len = %d, want %d", len(msgs), len(wantKinds))
	}
	for i, m := range msgs {
		if m.Kind() != wantKinds[i] {
			t.Errorf("entry %d kind = %v, want %v", i, m.Kind(), wantKinds[i])
		}
		_, isText := m.Text()
		_, isAudio := m.Audio()
		_, isPhoto := m.Photo()
		if isText != (m.Kind() == models.TextKind) ||
			isAudio != (m.Kind() == models.AudioKind) ||
			isPhoto != (m.Kind() == models.PhotoKind) {
			t.Errorf("entry %d exposes payload of another kind", i)
		}
	}

	if got, _ := msgs[1].Audio(); got != audio {
		t.Errorf("audio payload = %+v, want %+v", got, audio)
	}
	if got, _ := msgs[2].Photo(); got != photo {
		t.Errorf("photo payload = %+v, want %+v", got, photo)
	}
}

func TestLogFind(t *testing.T) {
	m := models.NewTextMessage(models.User, "x")
	l := NewLog(models.NewTextMessage(models.User, "y"), m)

	if got, ok := l.Find(m.ID); !ok || got.ID != m.ID {
		t.Errorf("Find(%s) = %v, %v", m.ID, got.ID, ok)
	}
	if _, ok := l.Find("missing"); ok {
		t.Error("Find(missing) reported a match")
	}
	if _, ok := l.LastOfKind(models.AudioKind); ok {
		t.Error("LastOfKind(Audio) matched in a text-only log")
	}
}
