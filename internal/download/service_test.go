package download

import (
	"strings"
	"testing"

	"github.com/tunetap/tunetap/internal/model"
)

func TestNewService(t *testing.T) {
	service := NewService("/tmp", 2, "mp3")

	if service.downloadDir != "/tmp" {
		t.Errorf("Expected downloadDir to be '/tmp', got '%s'", service.downloadDir)
	}

	if service.maxParallel != 2 {
		t.Errorf("Expected maxParallel to be 2, got %d", service.maxParallel)
	}

	if service.audioFormat != "mp3" {
		t.Errorf("Expected audioFormat to be 'mp3', got '%s'", service.audioFormat)
	}

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
}

func TestAddTask(t *testing.T) {
	service := NewService(t.TempDir(), 0, "mp3")

	// Add first task
	task1, err := service.AddTask("https://youtube.com/watch?v=test1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task1.URL != "https://youtube.com/watch?v=test1" {
		t.Errorf("Expected URL to be 'https://youtube.com/watch?v=test1', got '%s'", task1.URL)
	}

	if task1.Status != model.TaskStatusPending {
		t.Errorf("Expected status to be Pending, got %s", task1.Status)
	}

	if task1.AudioFormat != "mp3" {
		t.Errorf("Expected audio format 'mp3', got '%s'", task1.AudioFormat)
	}

	// Try to add duplicate task (should fail)
	_, err = service.AddTask("https://youtube.com/watch?v=test1")
	if err == nil {
		t.Error("Expected error for duplicate URL, got nil")
	}

	// Add different task (should succeed)
	task2, err := service.AddTask("https://youtube.com/watch?v=test2")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task2.URL != "https://youtube.com/watch?v=test2" {
		t.Errorf("Expected URL to be 'https://youtube.com/watch?v=test2', got '%s'", task2.URL)
	}
}

func TestGetTask(t *testing.T) {
	service := NewService(t.TempDir(), 0, "mp3")

	// Add a task
	task, err := service.AddTask("https://youtube.com/watch?v=test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Get existing task
	retrievedTask, exists := service.GetTask(task.ID)
	if !exists {
		t.Error("Expected task to exist")
	}

	if retrievedTask.ID != task.ID {
		t.Errorf("Expected task ID to be '%s', got '%s'", task.ID, retrievedTask.ID)
	}

	// Get non-existing task
	_, exists = service.GetTask("non-existing-id")
	if exists {
		t.Error("Expected task to not exist")
	}
}

func TestGetAllTasks(t *testing.T) {
	service := NewService(t.TempDir(), 0, "mp3")

	// Initially empty
	tasks := service.GetAllTasks()
	if len(tasks) != 0 {
		t.Errorf("Expected 0 tasks, got %d", len(tasks))
	}

	task1, err := service.AddTask("https://youtube.com/watch?v=test1")
	if err != nil {
		t.Fatalf("Failed to add first task: %v", err)
	}

	task2, err := service.AddTask("https://youtube.com/watch?v=test2")
	if err != nil {
		t.Fatalf("Failed to add second task: %v", err)
	}

	tasks = service.GetAllTasks()
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(tasks))
	}

	// Verify task IDs are present
	foundTask1 := false
	foundTask2 := false
	for _, task := range tasks {
		if task.ID == task1.ID {
			foundTask1 = true
		}
		if task.ID == task2.ID {
			foundTask2 = true
		}
	}

	if !foundTask1 {
		t.Error("Task 1 not found in results")
	}
	if !foundTask2 {
		t.Error("Task 2 not found in results")
	}
}

func TestStopTask_NotActive(t *testing.T) {
	service := NewService(t.TempDir(), 0, "mp3")

	if err := service.StopTask("missing"); err == nil {
		t.Error("Expected error for unknown task, got nil")
	}
}

func TestRemoveTask(t *testing.T) {
	service := NewService(t.TempDir(), 0, "mp3")

	task, err := service.AddTask("https://youtube.com/watch?v=test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Pending task cannot be removed while it may still start
	task.Status = model.TaskStatusCompleted

	if err := service.RemoveTask(task.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, exists := service.GetTask(task.ID); exists {
		t.Error("Expected task to be removed")
	}

	if err := service.RemoveTask(task.ID); err == nil {
		t.Error("Expected error for removed task, got nil")
	}
}

func TestRemoveTask_Active(t *testing.T) {
	service := NewService(t.TempDir(), 0, "mp3")

	task, err := service.AddTask("https://youtube.com/watch?v=test")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	task.Status = model.TaskStatusDownloading

	if err := service.RemoveTask(task.ID); err == nil {
		t.Error("Expected error for active task, got nil")
	}
}

func TestSetters(t *testing.T) {
	service := NewService("/tmp", 1, "mp3")

	service.SetAudioFormat("opus")
	if service.audioFormat != "opus" {
		t.Errorf("Expected audioFormat 'opus', got '%s'", service.audioFormat)
	}

	service.SetMaxParallelDownloads(5)
	if service.maxParallel != 5 {
		t.Errorf("Expected maxParallel 5, got %d", service.maxParallel)
	}

	service.SetDownloadDirectory("/music")
	if service.downloadDir != "/music" {
		t.Errorf("Expected downloadDir '/music', got '%s'", service.downloadDir)
	}
}

func TestUpdateCallback(t *testing.T) {
	service := NewService("/tmp", 1, "mp3")

	updateCalled := false
	var updatedTask *model.DownloadTask

	service.SetUpdateCallback(func(task *model.DownloadTask) {
		updateCalled = true
		updatedTask = task
	})

	// Create a test task
	task := &model.DownloadTask{
		ID:     "test-id",
		URL:    "https://youtube.com/watch?v=test",
		Status: model.TaskStatusDownloading,
	}

	service.notifyUpdate(task)

	if !updateCalled {
		t.Error("Expected update callback to be called")
	}

	if updatedTask != task {
		t.Error("Expected updated task to be the same as input task")
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if id1 == "" || id2 == "" {
		t.Error("Expected non-empty task IDs")
	}

	// Check prefix
	if !strings.HasPrefix(id1, "task-") {
		t.Errorf("Expected ID to start with 'task-', got: %s", id1)
	}

	// Check UUID format (task- + 36 chars for UUID)
	if len(id1) != len("task-")+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len("task-")+36, len(id1), id1)
	}
}
