package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/amankumarsingh77/cloud-video-transcriber/internal/app"
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/codec"
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/models"
	"github.com/amankumarsingh77/cloud-video-transcriber/internal/videofiles"
	"github.com/amankumarsingh77/cloud-video-transcriber/pkg/utils"
)

func main() {
	configFile := flag.String("config", "config/config.yml", "path to the config file")
	videoID := flag.String("video", "", "video id to enqueue")
	owner := flag.String("owner", "", "owner username")
	s3Key := flag.String("s3key", "", "register a new record for this object before enqueuing")
	fileType := flag.String("type", models.FileTypeVideo, "file type of a new record (video or audio)")
	list := flag.Bool("list", false, "list the owner's videos instead of enqueuing")
	page := flag.String("page", "1", "page for -list")
	size := flag.String("size", "10", "page size for -list")
	order := flag.String("order", "", "order for -list: created_at, -created_at, filename or -filename")
	flag.Parse()

	if *owner == "" {
		log.Fatal("-owner is required")
	}

	cfg, appLogger, err := app.LoadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	if *list {
		pq, err := utils.NewPagination(*page, *size, *order)
		if err != nil {
			log.Fatalf("invalid pagination: %v", err)
		}
		videos, err := a.VideoUC.ListVideos(ctx, *owner, pq)
		if err != nil {
			log.Fatalf("list videos: %v", err)
		}
		for _, v := range videos.Videos {
			fmt.Printf("%s\t%s\t%s\t%s\n", v.VideoID, v.Status, v.CreatedAt, v.Filename)
		}
		fmt.Printf("page %d/%d, %d videos\n", videos.Page, videos.TotalPages, videos.TotalCount)
		return
	}

	rec, err := a.VideoUC.GetVideo(ctx, *owner, *videoID)
	switch {
	case err == nil:
	case errors.Is(err, videofiles.ErrNotFound) && *s3Key != "":
		rec, err = a.VideoUC.CreateVideo(ctx, &models.VideoRecord{
			VideoID:       *videoID,
			OwnerUsername: *owner,
			S3Key:         *s3Key,
			FileType:      *fileType,
		})
		if err != nil {
			log.Fatalf("create video: %v", err)
		}
	default:
		log.Fatalf("video %s of %s: %v", *videoID, *owner, err)
	}

	msg := codec.NewJobMessage(rec.VideoID, rec.OwnerUsername, time.Now())
	body, err := codec.Encode(msg)
	if err != nil {
		log.Fatal(err)
	}
	id, err := a.Queue.Send(ctx, body, codec.Attributes(msg))
	if err != nil {
		log.Fatalf("send job: %v", err)
	}
	fmt.Printf("Job for video %s enqueued as message %s\n", rec.VideoID, id)
}
